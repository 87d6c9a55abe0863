// Package sync keeps an offline snapshot of the public content in the local
// key-value store, so the site still has something to show when both the
// remote store and the in-process cache are gone.
package sync

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/backend"
	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/news"
)

// KV keys, kept from the original site's localStorage layout.
const (
	newsKey      = "newsData"
	employeesKey = "employeesData"
	lastSyncKey  = "lastSync"
)

type Snapshot struct {
	News      []news.News         `json:"news"`
	Employees []employee.Employee `json:"employees"`
	LastSync  time.Time           `json:"last_sync"`
}

type Syncer struct {
	newsSvc *news.Service
	empSvc  *employee.Service
	kv      backend.KV
	logger  core.Logger
	now     func() time.Time
}

func NewSyncer(newsSvc *news.Service, empSvc *employee.Service, kv backend.KV, logger core.Logger) *Syncer {
	return &Syncer{
		newsSvc: newsSvc,
		empSvc:  empSvc,
		kv:      kv,
		logger:  logger,
		now:     time.Now,
	}
}

// SyncOnce pulls the current content through the services and persists it.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	newsItems, err := s.newsSvc.List(ctx, core.ListOptions{})
	if err != nil {
		return errors.Wrap(err, "syncing news")
	}
	emps, err := s.empSvc.List(ctx, core.ListOptions{})
	if err != nil {
		return errors.Wrap(err, "syncing employees")
	}

	return Store(s.kv, Snapshot{News: newsItems, Employees: emps, LastSync: s.now().UTC()})
}

// Store persists a snapshot under the fixed keys.
func Store(kv backend.KV, snap Snapshot) error {
	if err := kv.Put(newsKey, snap.News); err != nil {
		return errors.Wrap(err, "persisting news snapshot")
	}
	if err := kv.Put(employeesKey, snap.Employees); err != nil {
		return errors.Wrap(err, "persisting employees snapshot")
	}
	return errors.Wrap(kv.Put(lastSyncKey, snap.LastSync), "persisting sync timestamp")
}

// Load reads the last persisted snapshot. backend.ErrNoValue when none exists.
func Load(kv backend.KV) (Snapshot, error) {
	var snap Snapshot
	if err := kv.Get(newsKey, &snap.News); err != nil {
		return Snapshot{}, err
	}
	if err := kv.Get(employeesKey, &snap.Employees); err != nil {
		return Snapshot{}, err
	}
	if err := kv.Get(lastSyncKey, &snap.LastSync); err != nil && err != backend.ErrNoValue {
		return Snapshot{}, err
	}
	return snap, nil
}

// Run syncs on the given interval until ctx is done. Errors are logged, not
// fatal; the next tick retries.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.SyncOnce(ctx); err != nil {
		s.logger.Error("content sync failed", err)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				s.logger.Error("content sync failed", err)
			}
		}
	}
}

// Load reads the last persisted snapshot. backend.ErrNoValue when none exists.
func (s *Syncer) Load() (Snapshot, error) {
	return Load(s.kv)
}
