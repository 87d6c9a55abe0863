package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/employee"
)

type employeeRepository struct {
	db *DB
}

var _ employee.Repository = (*employeeRepository)(nil) // interface compliance check

func NewEmployeeRepository(db *DB) employee.Repository {
	return &employeeRepository{db: db}
}

func (repo *employeeRepository) query() []employee.Employee {
	items := make([]employee.Employee, 0, len(repo.db.employees.table))
	for _, e := range repo.db.employees.table {
		items = append(items, *e)
	}
	return items
}

func (repo *employeeRepository) Query(ctx context.Context, opts core.ListOptions) ([]employee.Employee, error) {
	if repo.db.readsFail() {
		return nil, ErrUnavailable
	}
	repo.db.employees.RLock()
	defer repo.db.employees.RUnlock()

	items := repo.query()
	sort.SliceStable(items, func(i, j int) bool {
		if opts.Desc {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items, nil
}

func (repo *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if repo.db.readsFail() {
		return employee.Employee{}, ErrUnavailable
	}
	repo.db.employees.RLock()
	defer repo.db.employees.RUnlock()

	if e, ok := repo.db.employees.table[id]; ok {
		return *e, nil
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (repo *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if repo.db.writesFail() {
		return employee.Employee{}, ErrUnavailable
	}
	repo.db.employees.Lock()
	defer repo.db.employees.Unlock()

	e.ID = uuid.New().String()
	repo.db.employees.table[e.ID] = &e
	return e, nil
}

func (repo *employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if repo.db.writesFail() {
		return employee.Employee{}, ErrUnavailable
	}
	repo.db.employees.Lock()
	defer repo.db.employees.Unlock()

	if _, ok := repo.db.employees.table[e.ID]; !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	repo.db.employees.table[e.ID] = &e
	return e, nil
}

func (repo *employeeRepository) Delete(ctx context.Context, id string) error {
	if repo.db.writesFail() {
		return ErrUnavailable
	}
	repo.db.employees.Lock()
	defer repo.db.employees.Unlock()

	delete(repo.db.employees.table, id)
	return nil
}
