package news

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/auth"
	"github.com/maqomuz/maktab/core/cache"
)

// failurePolicies is the explicit absorb/propagate contract per operation.
var failurePolicies = map[string]core.FailurePolicy{
	"list":   core.AbsorbAndSubstitute,
	"get":    core.Propagate,
	"add":    core.Propagate,
	"update": core.Propagate,
	"delete": core.Propagate,
}

type Service struct {
	repo     Repository
	session  auth.Session
	cache    *cache.Cache
	validate *validator.Validate
	logger   core.Logger
	now      func() time.Time
}

func NewService(repo Repository, session auth.Session, c *cache.Cache, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		session:  session,
		cache:    c,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (svc *Service) SetClock(now func() time.Time) { svc.now = now }

// List is the read path: cache hit returns the cached slice unchanged; a miss
// queries the store and re-sorts client-side by date before caching. Remote
// failures are absorbed and replaced with the fixed fallback set, which is
// never cached.
func (svc *Service) List(ctx context.Context, opts core.ListOptions) ([]News, error) {
	if opts.OrderBy == "" {
		opts.OrderBy = "date"
		opts.Desc = true
	}
	key := cache.Key{Kind: Kind, Limit: opts.Limit, OrderBy: opts.OrderBy, Desc: opts.Desc}

	if data, _, ok := svc.cache.Get(key); ok {
		return data.([]News), nil
	}
	gen := svc.cache.Generation(Kind)

	items, err := svc.repo.Query(ctx, opts)
	if err != nil {
		if failurePolicies["list"] == core.AbsorbAndSubstitute {
			svc.logger.Error("querying news, serving fallback", err)
			return Fallback(svc.now().UTC()), nil
		}
		return nil, errors.Wrap(err, "querying news")
	}

	sortByDate(items, opts.Desc)
	svc.cache.SetIfCurrent(key, items, gen)
	return items, nil
}

// GetByID bypasses the cache. ErrNotFound is a valid empty result; transport
// failures propagate.
func (svc *Service) GetByID(ctx context.Context, id string) (News, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) Add(ctx context.Context, nn NewNews) (News, error) {
	identity, ok := auth.IdentityFrom(ctx, svc.session)
	if !ok {
		return News{}, auth.ErrNotAuthenticated
	}
	if err := nn.Validate(svc.validate); err != nil {
		return News{}, err
	}

	now := svc.now().UTC()
	date := nn.Date
	if date == "" {
		date = now.Format(DateLayout)
	}
	item := News{
		Title:     nn.Title,
		Category:  nn.Category,
		Excerpt:   nn.Excerpt,
		Content:   nn.Content,
		ImageURL:  nn.ImageURL,
		Date:      date,
		Author:    identity.Label(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := svc.repo.Create(ctx, item)
	if err != nil {
		return News{}, errors.Wrap(err, "adding news")
	}
	svc.cache.InvalidateKind(Kind)
	return created, nil
}

// Update confirms the target still exists first: a missing target yields
// ErrUpdateTargetMissing so the caller can retry the edit as an Add instead
// of failing it.
func (svc *Service) Update(ctx context.Context, id string, uu UpdateNews) (News, error) {
	identity, ok := auth.IdentityFrom(ctx, svc.session)
	if !ok {
		return News{}, auth.ErrNotAuthenticated
	}

	orig, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return News{}, ErrUpdateTargetMissing
		}
		return News{}, errors.Wrap(err, "checking news target")
	}
	if err := uu.Validate(orig, svc.validate); err != nil {
		return News{}, err
	}

	item := orig
	item.Title = uu.Title
	item.Category = uu.Category
	item.Excerpt = uu.Excerpt
	item.Content = uu.Content
	item.ImageURL = uu.ImageURL
	item.Date = uu.Date
	item.UpdatedAt = svc.now().UTC()
	item.UpdatedBy = identity.Label()

	updated, err := svc.repo.Update(ctx, item)
	if err != nil {
		return News{}, errors.Wrap(err, "updating news")
	}
	svc.cache.InvalidateKind(Kind)
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, ok := auth.IdentityFrom(ctx, svc.session); !ok {
		return auth.ErrNotAuthenticated
	}
	if err := svc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "deleting news")
	}
	svc.cache.InvalidateKind(Kind)
	return nil
}

func sortByDate(items []News, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].DateValue(), items[j].DateValue()
		if desc {
			return a.After(b)
		}
		return a.Before(b)
	})
}
