package employee

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

func (svc *Service) List(ctx context.Context, opts core.ListOptions) ([]Employee, error) {
	if opts.OrderBy == "" {
		opts.OrderBy = "created_at"
		opts.Desc = true
	}
	key := cache.Key{Kind: Kind, Limit: opts.Limit, OrderBy: opts.OrderBy, Desc: opts.Desc}

	if data, _, ok := svc.cache.Get(key); ok {
		return data.([]Employee), nil
	}
	gen := svc.cache.Generation(Kind)

	items, err := svc.repo.Query(ctx, opts)
	if err != nil {
		if failurePolicies["list"] == core.AbsorbAndSubstitute {
			svc.logger.Error("querying employees, serving fallback", err)
			return Fallback(svc.now().UTC()), nil
		}
		return nil, errors.Wrap(err, "querying employees")
	}

	sortByCreated(items, opts.Desc)
	svc.cache.SetIfCurrent(key, items, gen)
	return items, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Employee, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) Add(ctx context.Context, ne NewEmployee) (Employee, error) {
	identity, ok := auth.IdentityFrom(ctx, svc.session)
	if !ok {
		return Employee{}, auth.ErrNotAuthenticated
	}
	if err := ne.Validate(svc.validate); err != nil {
		return Employee{}, err
	}

	now := svc.now().UTC()
	emp := Employee{
		Name:      ne.Name,
		Role:      ne.Role,
		Bio:       ne.Bio,
		Phone:     ne.Phone,
		Email:     ne.Email,
		ImageURL:  ne.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
		AddedBy:   identity.Label(),
	}
	created, err := svc.repo.Create(ctx, emp)
	if err != nil {
		return Employee{}, errors.Wrap(err, "adding employee")
	}
	svc.cache.InvalidateKind(Kind)
	return created, nil
}

func (svc *Service) Update(ctx context.Context, id string, ue UpdateEmployee) (Employee, error) {
	identity, ok := auth.IdentityFrom(ctx, svc.session)
	if !ok {
		return Employee{}, auth.ErrNotAuthenticated
	}

	orig, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Employee{}, ErrUpdateTargetMissing
		}
		return Employee{}, errors.Wrap(err, "checking employee target")
	}
	if err := ue.Validate(orig, svc.validate); err != nil {
		return Employee{}, err
	}

	emp := orig
	emp.Name = ue.Name
	emp.Role = ue.Role
	emp.Bio = ue.Bio
	emp.Phone = ue.Phone
	emp.Email = ue.Email
	emp.ImageURL = ue.ImageURL
	emp.UpdatedAt = svc.now().UTC()
	emp.UpdatedBy = identity.Label()

	updated, err := svc.repo.Update(ctx, emp)
	if err != nil {
		return Employee{}, errors.Wrap(err, "updating employee")
	}
	svc.cache.InvalidateKind(Kind)
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, ok := auth.IdentityFrom(ctx, svc.session); !ok {
		return auth.ErrNotAuthenticated
	}
	if err := svc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "deleting employee")
	}
	svc.cache.InvalidateKind(Kind)
	return nil
}

func sortByCreated(items []Employee, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
