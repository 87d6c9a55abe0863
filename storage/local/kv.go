// Package local is a file-backed JSON key-value store, the server-side analog
// of the original site's localStorage: audit log entries and the offline
// content snapshot live here.
package local

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core/backend"
)

type KV struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

var _ backend.KV = (*KV)(nil)

// Open loads the store from path, creating an empty one when the file does
// not exist yet.
func Open(path string) (*KV, error) {
	kv := &KV{path: path, data: make(map[string]json.RawMessage)}

	raw, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return kv, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading kv store")
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &kv.data); err != nil {
			return nil, errors.Wrap(err, "decoding kv store")
		}
	}
	return kv, nil
}

func (kv *KV) Put(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding kv value")
	}

	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.data[key] = raw
	return kv.flush()
}

func (kv *KV) Get(key string, v interface{}) error {
	kv.mu.Lock()
	raw, ok := kv.data[key]
	kv.mu.Unlock()

	if !ok {
		return backend.ErrNoValue
	}
	return errors.Wrap(json.Unmarshal(raw, v), "decoding kv value")
}

func (kv *KV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if _, ok := kv.data[key]; !ok {
		return nil
	}
	delete(kv.data, key)
	return kv.flush()
}

// flush writes the whole store atomically: temp file then rename.
// Callers hold kv.mu.
func (kv *KV) flush() error {
	raw, err := json.MarshalIndent(kv.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding kv store")
	}

	dir := filepath.Dir(kv.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating kv dir")
	}
	tmp, err := ioutil.TempFile(dir, ".kv-*")
	if err != nil {
		return errors.Wrap(err, "creating kv temp file")
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "writing kv store")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "closing kv temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), kv.path), "replacing kv store")
}
