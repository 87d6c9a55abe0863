package inmem

import (
	"context"
	"errors"
	"io"
	"io/ioutil"

	"github.com/maqomuz/maktab/core/backend"
)

var errBlobNotFound = errors.New("blob not found")

type fileStore struct {
	db      *DB
	baseURL string
}

var _ backend.FileStore = (*fileStore)(nil)

func NewFileStore(db *DB, baseURL string) backend.FileStore {
	return &fileStore{db: db, baseURL: baseURL}
}

func (fs *fileStore) Upload(ctx context.Context, path string, r io.Reader, contentType string) (string, error) {
	if fs.db.writesFail() {
		return "", ErrUnavailable
	}
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return "", err
	}

	fs.db.blobs.Lock()
	defer fs.db.blobs.Unlock()

	url := fs.baseURL + "/" + path
	fs.db.blobs.table[url] = content
	return url, nil
}

func (fs *fileStore) Delete(ctx context.Context, url string) error {
	if fs.db.writesFail() {
		return ErrUnavailable
	}
	fs.db.blobs.Lock()
	defer fs.db.blobs.Unlock()

	if _, ok := fs.db.blobs.table[url]; !ok {
		return errBlobNotFound
	}
	delete(fs.db.blobs.table, url)
	return nil
}
