package inmem

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maqomuz/maktab/core/backend"
)

// rateLimitAfter mirrors the hosted identity service's lockout behavior.
const rateLimitAfter = 10

type identityProvider struct {
	db *DB
}

var _ backend.IdentityProvider = (*identityProvider)(nil)

func NewIdentityProvider(db *DB) backend.IdentityProvider {
	return &identityProvider{db: db}
}

// SeedIdentity registers an account. Local development and tests only.
func (db *DB) SeedIdentity(email, password string, disabled bool) backend.Identity {
	db.identities.Lock()
	defer db.identities.Unlock()

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	identity := backend.Identity{UID: uuid.New().String(), Email: strings.ToLower(email)}
	db.identities.table[identity.Email] = &account{
		identity: identity,
		password: hash,
		disabled: disabled,
	}
	return identity
}

func (p *identityProvider) SignIn(ctx context.Context, email, password string) (backend.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return backend.Identity{}, backend.ErrInvalidEmail
	}

	p.db.identities.Lock()
	defer p.db.identities.Unlock()

	acc, ok := p.db.identities.table[email]
	if !ok {
		return backend.Identity{}, backend.ErrUnknownIdentity
	}
	if acc.disabled {
		return backend.Identity{}, backend.ErrDisabled
	}
	if acc.attempts >= rateLimitAfter {
		return backend.Identity{}, backend.ErrRateLimited
	}
	if bcrypt.CompareHashAndPassword(acc.password, []byte(password)) != nil {
		acc.attempts++
		return backend.Identity{}, backend.ErrWrongPassword
	}
	acc.attempts = 0
	return acc.identity, nil
}

func (p *identityProvider) SignOut(ctx context.Context) error {
	return nil
}
