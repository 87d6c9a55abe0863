package inmem

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/news"
)

// ErrUnavailable stands in for a transport-level failure of the hosted store.
var ErrUnavailable = errors.New("document store unavailable")

type newsRepository struct {
	db *DB
}

var _ news.Repository = (*newsRepository)(nil) // interface compliance check

func NewNewsRepository(db *DB) news.Repository {
	return &newsRepository{db: db}
}

func (repo *newsRepository) query() []news.News {
	items := make([]news.News, 0, len(repo.db.news.table))
	for _, n := range repo.db.news.table {
		items = append(items, *n)
	}
	return items
}

func (repo *newsRepository) Query(ctx context.Context, opts core.ListOptions) ([]news.News, error) {
	if repo.db.readsFail() {
		return nil, ErrUnavailable
	}
	repo.db.news.RLock()
	defer repo.db.news.RUnlock()

	items := repo.query()
	orderNews(items, opts)
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items, nil
}

func (repo *newsRepository) GetByID(ctx context.Context, id string) (news.News, error) {
	if repo.db.readsFail() {
		return news.News{}, ErrUnavailable
	}
	repo.db.news.RLock()
	defer repo.db.news.RUnlock()

	if n, ok := repo.db.news.table[id]; ok {
		return *n, nil
	}
	return news.News{}, news.ErrNotFound
}

func (repo *newsRepository) Create(ctx context.Context, n news.News) (news.News, error) {
	if repo.db.writesFail() {
		return news.News{}, ErrUnavailable
	}
	repo.db.news.Lock()
	defer repo.db.news.Unlock()

	n.ID = uuid.New().String()
	repo.db.news.table[n.ID] = &n
	return n, nil
}

func (repo *newsRepository) Update(ctx context.Context, n news.News) (news.News, error) {
	if repo.db.writesFail() {
		return news.News{}, ErrUnavailable
	}
	repo.db.news.Lock()
	defer repo.db.news.Unlock()

	if _, ok := repo.db.news.table[n.ID]; !ok {
		return news.News{}, news.ErrNotFound
	}
	repo.db.news.table[n.ID] = &n
	return n, nil
}

func (repo *newsRepository) Delete(ctx context.Context, id string) error {
	if repo.db.writesFail() {
		return ErrUnavailable
	}
	repo.db.news.Lock()
	defer repo.db.news.Unlock()

	delete(repo.db.news.table, id)
	return nil
}

func orderNews(items []news.News, opts core.ListOptions) {
	key := func(n news.News) time.Time { return n.DateValue() }
	if strings.EqualFold(opts.OrderBy, "created_at") {
		key = func(n news.News) time.Time { return n.CreatedAt }
	}
	// sort with the descending comparator directly; reversing a stable
	// ascending sort would flip the order of equal keys
	sort.SliceStable(items, func(i, j int) bool {
		if opts.Desc {
			return key(items[j]).Before(key(items[i]))
		}
		return key(items[i]).Before(key(items[j]))
	})
}
