package employee

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/maqomuz/maktab/core"
)

const Kind = "employees"

var (
	ErrNotFound            = errors.New("xodim topilmadi")
	ErrUpdateTargetMissing = errors.New("yangilanadigan xodim mavjud emas")
)

type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
	AddedBy   string    `json:"added_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

type NewEmployee struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Bio      string `json:"bio"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

func (ne *NewEmployee) Validate(validate *validator.Validate) error {
	ne.Name = core.CleanString(ne.Name)
	ne.Role = core.CleanString(ne.Role)
	ne.Email = core.CleanString(ne.Email, true)
	return validate.Struct(ne)
}

// UpdateEmployee fields left empty keep the stored value.
type UpdateEmployee struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

func (ue *UpdateEmployee) Validate(orig Employee, validate *validator.Validate) error {
	if name := core.CleanString(ue.Name); name != "" {
		ue.Name = name
	} else {
		ue.Name = orig.Name
	}
	if role := core.CleanString(ue.Role); role != "" {
		ue.Role = role
	} else {
		ue.Role = orig.Role
	}
	if ue.Bio == "" {
		ue.Bio = orig.Bio
	}
	if ue.Phone == "" {
		ue.Phone = orig.Phone
	}
	if email := core.CleanString(ue.Email, true); email != "" {
		ue.Email = email
	} else {
		ue.Email = orig.Email
	}
	if ue.ImageURL == "" {
		ue.ImageURL = orig.ImageURL
	}
	return validate.Struct(ue)
}

type Repository interface {
	Query(ctx context.Context, opts core.ListOptions) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id string) error
}
