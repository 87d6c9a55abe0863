package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/news"
)

// CreateNews inserts a news item directly through the repository, bypassing
// the service-level auth gate.
func CreateNews(t *testing.T, repo news.Repository, title, date string, createdAt ...time.Time) news.News {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	n := news.News{
		Title:     title,
		Date:      date,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	n, err := repo.Create(context.Background(), n)
	if err != nil {
		t.Fatalf("CreateNews() failed: %v", err)
	}
	return n
}

// CreateEmployee inserts an employee directly through the repository.
func CreateEmployee(t *testing.T, repo employee.Repository, name, role string, createdAt ...time.Time) employee.Employee {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	e := employee.Employee{
		Name:      name,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	e, err := repo.Create(context.Background(), e)
	if err != nil {
		t.Fatalf("CreateEmployee() failed: %v", err)
	}
	return e
}

// Diff fails the test with a unified diff when got != want.
func Diff(t *testing.T, want, got string) {
	t.Helper()

	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		t.Fatalf("Diff() failed: %v", err)
	}
	t.Errorf("mismatch:\n%s", diff)
}
