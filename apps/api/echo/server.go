package echoapi

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/auth"
	"github.com/maqomuz/maktab/core/contact"
	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/files"
	"github.com/maqomuz/maktab/core/news"
	"github.com/maqomuz/maktab/services/audit"
)

type (
	// ServerDeps carries everything the API needs, constructed once in main
	// and passed down explicitly.
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		AuthSvc     *auth.Service
		NewsSvc     *news.Service
		EmployeeSvc *employee.Service
		FileSvc     *files.Service
		ContactSvc  *contact.Service
		AuditLog    *audit.Logger
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		jwtConf  middleware.JWTConfig
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.jwtConf = middleware.JWTConfig{
		SigningKey:    []byte(deps.Conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    adminTokenKey,
		Claims:        new(Claims),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	debug := s.deps.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.Conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.deps.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(suspiciousAgentMiddleware(s.deps.AuditLog))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator)
	s.app.Debug = debug

	s.app.GET("/", home)

	registerSiteAPI(s.app.Group("/site"), s.deps)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(s.jwtConf)

	registerAdminAPI(v1, jwt, s.deps)
	registerNewsAPI(v1, jwt, s.deps)
	registerEmployeeAPI(v1, jwt, s.deps)
	registerUploadAPI(v1, jwt, s.deps)
}

func (s *server) Start() {
	addr := net.JoinHostPort(s.deps.Conf.Server.Host, s.deps.Conf.Server.Port)
	if err := s.app.Start(addr); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error { return s.errs }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Farg'ona maqom maktab-internati API")
}
