package news

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/maqomuz/maktab/core"
)

// Kind is the record-kind name used in cache keys and store collections.
const Kind = "news"

// DateLayout is how publication dates are stored (original site convention).
const DateLayout = "2006-01-02"

var (
	// ErrNotFound is a valid empty result for single-record reads, not a failure.
	ErrNotFound = errors.New("yangilik topilmadi")
	// ErrUpdateTargetMissing signals that the record to update no longer
	// exists; callers recover by re-issuing the edit as an add.
	ErrUpdateTargetMissing = errors.New("yangilanadigan yangilik mavjud emas")
)

type News struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// DateValue parses the publication date, falling back to CreatedAt when the
// date field is absent or malformed. Guards against store documents whose
// date and server-assigned ordering field disagree.
func (n News) DateValue() time.Time {
	if t, err := time.Parse(DateLayout, n.Date); err == nil {
		return t
	}
	return n.CreatedAt
}

// NewNews contains information needed to publish a news item.
type NewNews struct {
	Title    string `json:"title" validate:"required"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (nn *NewNews) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	nn.Category = core.CleanString(nn.Category)
	nn.Excerpt = core.CleanString(nn.Excerpt)
	return validate.Struct(nn)
}

// UpdateNews defines what may be provided to modify an existing item.
// Empty fields keep the stored value.
type UpdateNews struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (uu *UpdateNews) Validate(orig News, validate *validator.Validate) error {
	if title := core.CleanString(uu.Title); title != "" {
		uu.Title = title
	} else {
		uu.Title = orig.Title
	}
	if cat := core.CleanString(uu.Category); cat != "" {
		uu.Category = cat
	} else {
		uu.Category = orig.Category
	}
	if uu.Excerpt == "" {
		uu.Excerpt = orig.Excerpt
	}
	if uu.Content == "" {
		uu.Content = orig.Content
	}
	if uu.ImageURL == "" {
		uu.ImageURL = orig.ImageURL
	}
	if uu.Date == "" {
		uu.Date = orig.Date
	}
	return validate.Struct(uu)
}

// Repository is the remote document-store collection holding news items.
// The store assigns IDs on create; Update fails with ErrNotFound when the id
// is absent.
type Repository interface {
	Query(ctx context.Context, opts core.ListOptions) ([]News, error)
	GetByID(ctx context.Context, id string) (News, error)
	Create(ctx context.Context, n News) (News, error)
	Update(ctx context.Context, n News) (News, error)
	Delete(ctx context.Context, id string) error
}
