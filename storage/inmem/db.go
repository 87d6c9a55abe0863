// Package inmem is the local stand-in for the hosted backend: guarded
// in-memory tables behind the same interfaces the hosted services implement.
// Used for local development and tests; it is not a storage engine.
package inmem

import (
	"sync"

	"github.com/maqomuz/maktab/core/backend"
	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/news"
)

type (
	DB struct {
		news       *newsTable
		employees  *employeeTable
		blobs      *blobTable
		identities *identityTable

		// FailReads makes every query/get fail; FailAll also fails writes.
		// The fallback-path tests flip these.
		failMu    sync.RWMutex
		failReads bool
		failAll   bool
	}

	newsTable struct {
		sync.RWMutex
		table map[string]*news.News
	}

	employeeTable struct {
		sync.RWMutex
		table map[string]*employee.Employee
	}

	blobTable struct {
		sync.RWMutex
		table map[string][]byte // url -> content
	}

	identityTable struct {
		sync.RWMutex
		table map[string]*account // email -> account
	}

	account struct {
		identity backend.Identity
		password []byte // bcrypt hash
		disabled bool
		attempts int
	}
)

func Open() (*DB, error) {
	db := &DB{
		news:       &newsTable{table: make(map[string]*news.News)},
		employees:  &employeeTable{table: make(map[string]*employee.Employee)},
		blobs:      &blobTable{table: make(map[string][]byte)},
		identities: &identityTable{table: make(map[string]*account)},
	}
	return db, nil
}

// SetFailReads toggles read failures (list/get) to exercise fallback paths.
func (db *DB) SetFailReads(fail bool) {
	db.failMu.Lock()
	db.failReads = fail
	db.failMu.Unlock()
}

// SetFailAll toggles failures on every operation.
func (db *DB) SetFailAll(fail bool) {
	db.failMu.Lock()
	db.failAll = fail
	db.failMu.Unlock()
}

func (db *DB) readsFail() bool {
	db.failMu.RLock()
	defer db.failMu.RUnlock()
	return db.failReads || db.failAll
}

func (db *DB) writesFail() bool {
	db.failMu.RLock()
	defer db.failMu.RUnlock()
	return db.failAll
}
