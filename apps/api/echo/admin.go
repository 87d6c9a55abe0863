package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/auth"
	"github.com/maqomuz/maktab/core/backend"
	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/news"
	"github.com/maqomuz/maktab/services/audit"
)

type adminApi struct {
	conf        *core.Config
	authSvc     *auth.Service
	newsSvc     *news.Service
	employeeSvc *employee.Service
	auditLog    *audit.Logger
	validate    *validator.Validate
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := adminApi{
		conf:        deps.Conf,
		authSvc:     deps.AuthSvc,
		newsSvc:     deps.NewsSvc,
		employeeSvc: deps.EmployeeSvc,
		auditLog:    deps.AuditLog,
		validate:    deps.Validate,
	}

	// un-authed
	g.POST("/login", api.login)

	// authed
	ag := g.Group("", jwt, sessionMiddleware(), adminAuditMiddleware(deps.AuditLog))
	ag.POST("/logout", api.logout)
	ag.GET("/stats", api.stats)
	ag.GET("/audit/report", api.auditReport)
}

func (api *adminApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	identity, err := api.authSvc.SignIn(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		api.auditLog.Log(audit.EventFailedLogin,
			map[string]string{"email": data.Email},
			ctx.RealIP(), ctx.Request().UserAgent())
		return errors.Wrap(err, "signing in")
	}
	api.auditLog.Log(audit.EventLogin,
		map[string]string{"email": identity.Email},
		ctx.RealIP(), ctx.Request().UserAgent())

	token, err := GenerateToken(api.conf, NewClaims(api.conf, identity))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Identity: identity})
}

func (api *adminApi) logout(ctx echo.Context) error {
	identity, _ := getContextIdentity(ctx)
	if err := api.authSvc.SignOut(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "signing out")
	}
	api.auditLog.Log(audit.EventLogout,
		map[string]string{"email": identity.Email},
		ctx.RealIP(), ctx.Request().UserAgent())
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) stats(ctx echo.Context) error {
	newsItems, err := api.newsSvc.List(ctx.Request().Context(), core.ListOptions{})
	if err != nil {
		return errors.Wrap(err, "listing news")
	}
	emps, err := api.employeeSvc.List(ctx.Request().Context(), core.ListOptions{})
	if err != nil {
		return errors.Wrap(err, "listing employees")
	}

	var lastUpdate time.Time
	for _, n := range newsItems {
		if n.UpdatedAt.After(lastUpdate) {
			lastUpdate = n.UpdatedAt
		}
	}
	for _, e := range emps {
		if e.UpdatedAt.After(lastUpdate) {
			lastUpdate = e.UpdatedAt
		}
	}

	return ctx.JSON(http.StatusOK, StatsResponse{
		NewsCount:     len(newsItems),
		EmployeeCount: len(emps),
		LastUpdate:    lastUpdate,
	})
}

func (api *adminApi) auditReport(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.auditLog.Report())
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token    string           `json:"token"`
		Identity backend.Identity `json:"identity"`
	}

	StatsResponse struct {
		NewsCount     int       `json:"news_count"`
		EmployeeCount int       `json:"employees_count"`
		LastUpdate    time.Time `json:"last_update"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
