// Package auth tracks the signed-in session principal on top of the hosted
// identity service. Every mutating content operation checks it first.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/maqomuz/maktab/core/backend"
)

// ErrNotAuthenticated is returned by the auth gate when no identity is
// signed in. Writes must fail with it before any network call is made.
var ErrNotAuthenticated = errors.New("foydalanuvchi autentifikatsiya qilinmagan")

// Session is the read side used by the content services.
type Session interface {
	Current() (backend.Identity, bool)
}

type identityKey struct{}

// WithIdentity returns a context carrying a request-scoped identity, resolved
// ahead of the shared session so an in-flight request keeps its principal
// across a concurrent sign-out.
func WithIdentity(ctx context.Context, identity backend.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom resolves the acting identity: request context first, shared
// session second.
func IdentityFrom(ctx context.Context, s Session) (backend.Identity, bool) {
	if identity, ok := ctx.Value(identityKey{}).(backend.Identity); ok {
		return identity, true
	}
	if s != nil {
		return s.Current()
	}
	return backend.Identity{}, false
}

// Service wraps the identity provider and keeps the current session identity.
// Change listeners fire on sign-in, sign-out and resume.
type Service struct {
	provider backend.IdentityProvider

	mu        sync.RWMutex
	current   backend.Identity
	signedIn  bool
	listeners []func(backend.Identity, bool)
}

var _ Session = (*Service)(nil)

func NewService(provider backend.IdentityProvider) *Service {
	return &Service{provider: provider}
}

func (svc *Service) SignIn(ctx context.Context, email, password string) (backend.Identity, error) {
	identity, err := svc.provider.SignIn(ctx, email, password)
	if err != nil {
		return backend.Identity{}, err
	}
	svc.set(identity, true)
	return identity, nil
}

func (svc *Service) SignOut(ctx context.Context) error {
	if err := svc.provider.SignOut(ctx); err != nil {
		return err
	}
	svc.set(backend.Identity{}, false)
	return nil
}

func (svc *Service) Current() (backend.Identity, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.current, svc.signedIn
}

// OnChange registers a session-state change listener. Listeners run
// synchronously in registration order.
func (svc *Service) OnChange(fn func(identity backend.Identity, signedIn bool)) {
	svc.mu.Lock()
	svc.listeners = append(svc.listeners, fn)
	svc.mu.Unlock()
}

func (svc *Service) set(identity backend.Identity, signedIn bool) {
	svc.mu.Lock()
	svc.current = identity
	svc.signedIn = signedIn
	listeners := make([]func(backend.Identity, bool), len(svc.listeners))
	copy(listeners, svc.listeners)
	svc.mu.Unlock()

	for _, fn := range listeners {
		fn(identity, signedIn)
	}
}
