package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/files"
)

type uploadApi struct {
	svc *files.Service
}

func registerUploadAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := uploadApi{svc: deps.FileSvc}

	ug := g.Group("/uploads", jwt, sessionMiddleware(), adminAuditMiddleware(deps.AuditLog))
	ug.POST("/:folder", api.create)
	ug.DELETE("", api.destroy)
}

// create uploads the "file" multipart part into the requested folder and
// returns the public URL to store on the owning record.
func (api *uploadApi) create(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "fayl topilmadi"})
	}

	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening multipart file")
	}
	defer src.Close()

	url, err := api.svc.Upload(ctx.Request().Context(), files.File{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      src,
	}, ctx.Param("folder"))
	if err != nil {
		return errors.Wrap(err, "uploading file")
	}

	return ctx.JSON(http.StatusCreated, UploadResponse{URL: url})
}

func (api *uploadApi) destroy(ctx echo.Context) error {
	url := ctx.QueryParam("url")
	if url == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "url", Error: "bu maydon majburiy"})
	}
	if err := api.svc.Delete(ctx.Request().Context(), url); err != nil {
		return errors.Wrap(err, "deleting file")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type UploadResponse struct {
	URL string `json:"url"`
}
