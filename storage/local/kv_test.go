package local

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/maqomuz/maktab/core/backend"
)

func TestKV_roundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")

	kv, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := kv.Put("key", payload{Name: "a", Count: 2}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	var got payload
	if err := kv.Get("key", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "a" || got.Count != 2 {
		t.Errorf("Get() = %+v", got)
	}

	// values survive a reopen
	kv2, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	got = payload{}
	if err := kv2.Get("key", &got); err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Name != "a" {
		t.Errorf("Get() after reopen = %+v", got)
	}
}

func TestKV_missingKey(t *testing.T) {
	kv, err := Open(filepath.Join(t.TempDir(), "kv.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	var v string
	if err := kv.Get("absent", &v); err != backend.ErrNoValue {
		t.Fatalf("Get() error = %v; want ErrNoValue", err)
	}
}

func TestKV_Delete(t *testing.T) {
	kv, err := Open(filepath.Join(t.TempDir(), "kv.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := kv.Put("key", "value"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := kv.Delete("key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	var v string
	if err := kv.Get("key", &v); err != backend.ErrNoValue {
		t.Errorf("Get() after delete error = %v; want ErrNoValue", err)
	}

	// deleting an absent key is not an error
	if err := kv.Delete("key"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
}

func TestKV_corruptFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	if err := ioutil.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("Open() accepted a corrupt store")
	}
}
