package backend

import (
	"context"
	"testing"
)

type stubIdentity struct{}

func (stubIdentity) SignIn(ctx context.Context, email, password string) (Identity, error) {
	return Identity{}, nil
}
func (stubIdentity) SignOut(ctx context.Context) error { return nil }

func TestFacade(t *testing.T) {
	t.Run("ready after construction", func(t *testing.T) {
		f := NewFacade(stubIdentity{}, nil, nil)
		select {
		case <-f.Ready():
		default:
			t.Error("Ready() channel still open")
		}
	})

	t.Run("configured capability", func(t *testing.T) {
		f := NewFacade(stubIdentity{}, nil, nil)
		if _, err := f.Identity(); err != nil {
			t.Errorf("Identity() error = %v", err)
		}
	})

	t.Run("missing capability", func(t *testing.T) {
		f := NewFacade(stubIdentity{}, nil, nil)
		if _, err := f.Files(); err != ErrNotConfigured {
			t.Errorf("Files() error = %v; want ErrNotConfigured", err)
		}
		if _, err := f.KV(); err != ErrNotConfigured {
			t.Errorf("KV() error = %v; want ErrNotConfigured", err)
		}
	})
}

func TestIdentityLabel(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		want string
	}{
		{"with email", Identity{UID: "u1", Email: "admin@maktab.uz"}, "admin@maktab.uz"},
		{"without email", Identity{UID: "u1"}, "Admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Label(); got != tt.want {
				t.Errorf("Label() = %q; want %q", got, tt.want)
			}
		})
	}
}
