package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core/employee"
)

type employeeApi struct {
	svc *employee.Service
}

func registerEmployeeAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := employeeApi{svc: deps.EmployeeSvc}

	eg := g.Group("/employees", jwt, sessionMiddleware(), adminAuditMiddleware(deps.AuditLog))
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

func (api *employeeApi) query(ctx echo.Context) error {
	emps, err := api.svc.List(ctx.Request().Context(), bindListOptions(ctx))
	if err != nil {
		return errors.Wrap(err, "listing employees")
	}
	if emps == nil {
		emps = []employee.Employee{}
	}
	return ctx.JSON(http.StatusOK, emps)
}

func (api *employeeApi) retrieve(ctx echo.Context) error {
	emp, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding employee by ID")
	}
	return ctx.JSON(http.StatusOK, emp)
}

func (api *employeeApi) create(ctx echo.Context) error {
	var data employee.NewEmployee
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEmployee")
	}

	emp, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding employee")
	}
	return ctx.JSON(http.StatusCreated, emp)
}

// update edits an employee. A deleted target turns the edit into an add,
// same recovery as for news.
func (api *employeeApi) update(ctx echo.Context) error {
	var data employee.UpdateEmployee
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEmployee")
	}

	emp, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) != employee.ErrUpdateTargetMissing {
			return errors.Wrap(err, "updating employee")
		}
		emp, err = api.svc.Add(ctx.Request().Context(), employee.NewEmployee{
			Name:     data.Name,
			Role:     data.Role,
			Bio:      data.Bio,
			Phone:    data.Phone,
			Email:    data.Email,
			ImageURL: data.ImageURL,
		})
		if err != nil {
			return errors.Wrap(err, "re-adding employee")
		}
		return ctx.JSON(http.StatusCreated, emp)
	}
	return ctx.JSON(http.StatusOK, emp)
}

func (api *employeeApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting employee")
	}
	return ctx.NoContent(http.StatusNoContent)
}
