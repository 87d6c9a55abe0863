package inmem

import (
	"context"
	"strings"
	"testing"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/backend"
	"github.com/maqomuz/maktab/core/news"
)

func openDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return db
}

func TestNewsRepository_CRUD(t *testing.T) {
	db := openDB(t)
	repo := NewNewsRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, news.News{Title: "Birinchi", Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Birinchi" {
		t.Errorf("Title = %q", got.Title)
	}

	got.Title = "Yangilangan"
	if _, err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ = repo.GetByID(ctx, created.ID)
	if got.Title != "Yangilangan" {
		t.Errorf("Title = %q after update", got.Title)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); err != news.ErrNotFound {
		t.Errorf("GetByID() after delete error = %v; want ErrNotFound", err)
	}
}

func TestNewsRepository_Update_missing(t *testing.T) {
	repo := NewNewsRepository(openDB(t))

	_, err := repo.Update(context.Background(), news.News{ID: "gone", Title: "x"})
	if err != news.ErrNotFound {
		t.Fatalf("Update() error = %v; want ErrNotFound", err)
	}
}

func TestNewsRepository_Query_ordering(t *testing.T) {
	db := openDB(t)
	repo := NewNewsRepository(db)
	ctx := context.Background()

	for _, n := range []news.News{
		{Title: "A", Date: "2026-01-10"},
		{Title: "B", Date: "2026-02-20"},
		{Title: "C", Date: "2026-02-01"},
	} {
		if _, err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	items, err := repo.Query(ctx, core.ListOptions{OrderBy: "date", Desc: true})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(items) != 3 || items[0].Title != "B" || items[2].Title != "A" {
		t.Errorf("Query() order = %v", titles(items))
	}

	limited, err := repo.Query(ctx, core.ListOptions{OrderBy: "date", Desc: true, Limit: 2})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Query(limit=2) returned %d items", len(limited))
	}
}

func TestOrderNews_equalDatesKeepOrder(t *testing.T) {
	items := []news.News{
		{Title: "A", Date: "2026-02-20"},
		{Title: "B", Date: "2026-02-20"},
		{Title: "C", Date: "2026-01-10"},
	}

	orderNews(items, core.ListOptions{OrderBy: "date", Desc: true})
	if items[0].Title != "A" || items[1].Title != "B" || items[2].Title != "C" {
		t.Errorf("descending order = %v; equal dates must keep their order", titles(items))
	}

	orderNews(items, core.ListOptions{OrderBy: "date"})
	if items[0].Title != "C" || items[1].Title != "A" || items[2].Title != "B" {
		t.Errorf("ascending order = %v; equal dates must keep their order", titles(items))
	}
}

func TestDB_failureToggles(t *testing.T) {
	db := openDB(t)
	repo := NewNewsRepository(db)
	ctx := context.Background()

	db.SetFailReads(true)
	if _, err := repo.Query(ctx, core.ListOptions{}); err != ErrUnavailable {
		t.Errorf("Query() error = %v; want ErrUnavailable", err)
	}
	// writes still work
	if _, err := repo.Create(ctx, news.News{Title: "x"}); err != nil {
		t.Errorf("Create() error = %v with only reads failing", err)
	}

	db.SetFailReads(false)
	db.SetFailAll(true)
	if _, err := repo.Create(ctx, news.News{Title: "y"}); err != ErrUnavailable {
		t.Errorf("Create() error = %v; want ErrUnavailable", err)
	}
}

func TestIdentityProvider_SignIn(t *testing.T) {
	db := openDB(t)
	provider := NewIdentityProvider(db)
	ctx := context.Background()

	seeded := db.SeedIdentity("Admin@Test.Test", "parol123", false)
	db.SeedIdentity("off@test.test", "x", true)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "ok", email: "admin@test.test", password: "parol123"},
		{name: "case-insensitive email", email: "ADMIN@test.test", password: "parol123"},
		{name: "malformed email", email: "not-an-email", wantErr: backend.ErrInvalidEmail},
		{name: "unknown", email: "nobody@test.test", password: "x", wantErr: backend.ErrUnknownIdentity},
		{name: "wrong password", email: "admin@test.test", password: "bad", wantErr: backend.ErrWrongPassword},
		{name: "disabled", email: "off@test.test", password: "x", wantErr: backend.ErrDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := provider.SignIn(ctx, tt.email, tt.password)
			if err != tt.wantErr {
				t.Fatalf("SignIn() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && identity.UID != seeded.UID {
				t.Errorf("identity = %+v; want the seeded account", identity)
			}
		})
	}
}

func TestIdentityProvider_rateLimit(t *testing.T) {
	db := openDB(t)
	provider := NewIdentityProvider(db)
	ctx := context.Background()

	db.SeedIdentity("admin@test.test", "parol123", false)

	for i := 0; i < 10; i++ {
		if _, err := provider.SignIn(ctx, "admin@test.test", "bad"); err != backend.ErrWrongPassword {
			t.Fatalf("SignIn() attempt %d error = %v; want ErrWrongPassword", i, err)
		}
	}
	// even the correct password is refused once locked out
	if _, err := provider.SignIn(ctx, "admin@test.test", "parol123"); err != backend.ErrRateLimited {
		t.Fatalf("SignIn() error = %v; want ErrRateLimited", err)
	}
}

func TestFileStore(t *testing.T) {
	db := openDB(t)
	store := NewFileStore(db, "https://storage.test")
	ctx := context.Background()

	url, err := store.Upload(ctx, "news/1_a.jpg", strings.NewReader("bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://storage.test/news/1_a.jpg" {
		t.Errorf("url = %q", url)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, url); err == nil {
		t.Error("Delete() of a missing blob succeeded")
	}
}

func titles(items []news.News) []string {
	out := make([]string, len(items))
	for i, n := range items {
		out[i] = n.Title
	}
	return out
}
