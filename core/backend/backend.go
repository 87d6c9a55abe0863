// Package backend declares the interfaces of the hosted services the site
// delegates to: identity, per-kind document repositories (declared in their
// domain packages), binary file storage and a small local key-value store.
// The services themselves are external; this package only holds their handles.
package backend

import (
	"context"
	"errors"
	"io"
)

// Identity is the session principal returned by the identity service.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Label is the identity's display name used to stamp records.
func (id Identity) Label() string {
	if id.Email != "" {
		return id.Email
	}
	return "Admin"
}

var (
	// identity service failure categories, mapped to user-facing text at the API edge
	ErrUnknownIdentity = errors.New("identity not found")
	ErrWrongPassword   = errors.New("wrong password")
	ErrInvalidEmail    = errors.New("malformed email")
	ErrRateLimited     = errors.New("too many attempts")
	ErrDisabled        = errors.New("identity disabled")

	ErrNoValue = errors.New("no value for key")

	ErrNotConfigured = errors.New("backend capability not configured")
)

type (
	// IdentityProvider is the hosted authentication service.
	IdentityProvider interface {
		SignIn(ctx context.Context, email, password string) (Identity, error)
		SignOut(ctx context.Context) error
	}

	// FileStore is the hosted blob store: path-addressed uploads resolving
	// to public URLs, deletion by that URL.
	FileStore interface {
		Upload(ctx context.Context, path string, r io.Reader, contentType string) (url string, err error)
		Delete(ctx context.Context, url string) error
	}

	// KV is the local persistent key-value store (holds the audit log and
	// the offline content snapshot). Values are JSON-encoded.
	KV interface {
		Put(key string, v interface{}) error
		// Get decodes the stored value into v; ErrNoValue when absent.
		Get(key string, v interface{}) error
		Delete(key string) error
	}
)

// Facade holds the remote capabilities, constructed once in main and passed
// down explicitly. Getters fail instead of handing out a nil capability, and
// Ready is closed at the end of initialization so dependents can await it
// rather than polling.
type Facade struct {
	identity IdentityProvider
	files    FileStore
	kv       KV

	ready chan struct{}
}

func NewFacade(identity IdentityProvider, files FileStore, kv KV) *Facade {
	f := &Facade{
		identity: identity,
		files:    files,
		kv:       kv,
		ready:    make(chan struct{}),
	}
	close(f.ready)
	return f
}

// Ready is closed once the facade is fully initialized.
func (f *Facade) Ready() <-chan struct{} { return f.ready }

func (f *Facade) Identity() (IdentityProvider, error) {
	if f.identity == nil {
		return nil, ErrNotConfigured
	}
	return f.identity, nil
}

func (f *Facade) Files() (FileStore, error) {
	if f.files == nil {
		return nil, ErrNotConfigured
	}
	return f.files, nil
}

func (f *Facade) KV() (KV, error) {
	if f.kv == nil {
		return nil, ErrNotConfigured
	}
	return f.kv, nil
}
