package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-playground/locales/uz"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/maqomuz/maktab/apps/api/echo"
	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/auth"
	"github.com/maqomuz/maktab/core/backend"
	"github.com/maqomuz/maktab/core/cache"
	"github.com/maqomuz/maktab/core/contact"
	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/files"
	"github.com/maqomuz/maktab/core/news"
	"github.com/maqomuz/maktab/services/audit"
	emailsvc "github.com/maqomuz/maktab/services/email"
	"github.com/maqomuz/maktab/storage/inmem"
	"github.com/maqomuz/maktab/storage/local"
)

const (
	adminEmail    = "admin@test.test"
	adminPassword = "parol123"
)

var errNotAuthenticated = httpErr{Error: "foydalanuvchi autentifikatsiya qilinmagan"}

type env struct {
	Server   Server
	Conf     *core.Config
	DB       *inmem.DB
	NewsRepo news.Repository
	EmpRepo  employee.Repository
	Admin    backend.Identity
	AuditLog *audit.Logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) *env {
	t.Helper()

	conf := core.NewTestConfig()

	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("inmem.Open() failed: %v", err)
	}
	kv, err := local.Open(filepath.Join(t.TempDir(), "kv.json"))
	if err != nil {
		t.Fatalf("local.Open() failed: %v", err)
	}
	admin := db.SeedIdentity(adminEmail, adminPassword, false)

	validate := validator.New()
	_uz := uz.New()
	uni := ut.New(_uz, _uz)
	translator, _ := uni.GetTranslator("uz")
	core.InitValidators(validate, translator)

	emailsvc.ResetSentMessages()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	logger := nopLogger{}
	authSvc := auth.NewService(inmem.NewIdentityProvider(db))
	dataCache := cache.New(conf.Cache.TTL)
	newsRepo := inmem.NewNewsRepository(db)
	empRepo := inmem.NewEmployeeRepository(db)
	newsSvc := news.NewService(newsRepo, authSvc, dataCache, validate, logger)
	empSvc := employee.NewService(empRepo, authSvc, dataCache, validate, logger)
	fileSvc := files.NewService(inmem.NewFileStore(db, conf.Storage.BaseURL), authSvc, conf)
	contactSvc := contact.NewService(mailSvc, validate, conf)
	auditLog := audit.NewLogger(kv, conf.Audit, logger)

	server := NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logger,
		AuthSvc:     authSvc,
		NewsSvc:     newsSvc,
		EmployeeSvc: empSvc,
		FileSvc:     fileSvc,
		ContactSvc:  contactSvc,
		AuditLog:    auditLog,
		Validate:    validate,
		Translator:  translator,
	})

	return &env{
		Server:   server,
		Conf:     conf,
		DB:       db,
		NewsRepo: newsRepo,
		EmpRepo:  empRepo,
		Admin:    admin,
		AuditLog: auditLog,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, e *env) string {
	t.Helper()

	token, err := GenerateToken(e.Conf, NewClaims(e.Conf, e.Admin))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q failed: %v", rec.Body.String(), err)
	}
}
