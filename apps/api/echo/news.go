package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core/news"
)

type newsApi struct {
	svc *news.Service
}

func registerNewsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := newsApi{svc: deps.NewsSvc}

	ng := g.Group("/news", jwt, sessionMiddleware(), adminAuditMiddleware(deps.AuditLog))
	ng.GET("", api.query)
	ng.POST("", api.create)
	ng.GET("/:id", api.retrieve)
	ng.PUT("/:id", api.update)
	ng.DELETE("/:id", api.destroy)
}

func (api *newsApi) query(ctx echo.Context) error {
	items, err := api.svc.List(ctx.Request().Context(), bindListOptions(ctx))
	if err != nil {
		return errors.Wrap(err, "listing news")
	}
	if items == nil {
		items = []news.News{}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *newsApi) retrieve(ctx echo.Context) error {
	item, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding news by ID")
	}
	return ctx.JSON(http.StatusOK, item)
}

func (api *newsApi) create(ctx echo.Context) error {
	var data news.NewNews
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNews")
	}

	item, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding news")
	}
	return ctx.JSON(http.StatusCreated, item)
}

// update edits a news item. When the target was deleted meanwhile, the edit
// is re-issued as an add so the admin's work is not lost.
func (api *newsApi) update(ctx echo.Context) error {
	var data news.UpdateNews
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNews")
	}

	item, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) != news.ErrUpdateTargetMissing {
			return errors.Wrap(err, "updating news")
		}
		item, err = api.svc.Add(ctx.Request().Context(), news.NewNews{
			Title:    data.Title,
			Category: data.Category,
			Excerpt:  data.Excerpt,
			Content:  data.Content,
			ImageURL: data.ImageURL,
			Date:     data.Date,
		})
		if err != nil {
			return errors.Wrap(err, "re-adding news")
		}
		return ctx.JSON(http.StatusCreated, item)
	}
	return ctx.JSON(http.StatusOK, item)
}

func (api *newsApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting news")
	}
	return ctx.NoContent(http.StatusNoContent)
}
