// Package files validates and uploads record images/documents to the hosted
// blob store. Unlike record list reads, file operation failures always
// propagate to the caller.
package files

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/auth"
	"github.com/maqomuz/maktab/core/backend"
)

var (
	ErrFileTooLarge   = errors.New("fayl hajmi ruxsat etilganidan katta")
	ErrFileTypeDenied = errors.New("ruxsat berilmagan fayl formati")
)

// File describes an upload candidate before any network call is made.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type Service struct {
	store   backend.FileStore
	session auth.Session
	conf    *core.Config
	now     func() time.Time
}

func NewService(store backend.FileStore, session auth.Session, conf *core.Config) *Service {
	return &Service{
		store:   store,
		session: session,
		conf:    conf,
		now:     time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (svc *Service) SetClock(now func() time.Time) { svc.now = now }

// Upload validates the file against the configured size cap and MIME
// allow-list, synthesizes a collision-free path under `folder` and uploads.
// Returns the publicly-resolvable URL to store on the owning record.
func (svc *Service) Upload(ctx context.Context, f File, folder string) (string, error) {
	if _, ok := auth.IdentityFrom(ctx, svc.session); !ok {
		return "", auth.ErrNotAuthenticated
	}
	if err := svc.validate(f); err != nil {
		return "", err
	}

	path := folder + "/" + svc.filename(f.Name)
	url, err := svc.store.Upload(ctx, path, f.Reader, f.ContentType)
	if err != nil {
		return "", errors.Wrap(err, "uploading file")
	}
	return url, nil
}

func (svc *Service) Delete(ctx context.Context, url string) error {
	if _, ok := auth.IdentityFrom(ctx, svc.session); !ok {
		return auth.ErrNotAuthenticated
	}
	return errors.Wrap(svc.store.Delete(ctx, url), "deleting file")
}

func (svc *Service) validate(f File) error {
	if f.Size > svc.conf.Storage.MaxFileSize {
		return core.NewValidationError(ErrFileTooLarge, core.FieldError{
			Field: "file",
			Error: fmt.Sprintf("fayl hajmi %s dan katta", core.FormatFileSize(svc.conf.Storage.MaxFileSize)),
		})
	}
	for _, typ := range svc.conf.Storage.AllowedImageTypes {
		if typ == f.ContentType {
			return nil
		}
	}
	for _, typ := range svc.conf.Storage.AllowedDocumentTypes {
		if typ == f.ContentType {
			return nil
		}
	}
	return core.NewValidationError(ErrFileTypeDenied, core.FieldError{
		Field: "file",
		Error: ErrFileTypeDenied.Error(),
	})
}

// filename is {timestamp}_{random}.{ext}, avoiding collisions between
// same-named uploads.
func (svc *Service) filename(original string) string {
	rand := strings.Split(uuid.New().String(), "-")[0]
	name := fmt.Sprintf("%d_%s", svc.now().UnixNano()/int64(time.Millisecond), rand)
	if ext := core.FileExt(original); ext != "" {
		name += "." + strings.ToLower(ext)
	}
	return name
}
