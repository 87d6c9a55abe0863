package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/maqomuz/maktab/apps/api/echo"
	"github.com/maqomuz/maktab/services/audit"
)

func TestApiAuditReport(t *testing.T) {
	e := setup(t)
	token := getToken(t, e)

	// a failed login and a scraper visit leave traces
	data := marshallObj(t, LoginRequest{Email: adminEmail, Password: "notog'ri"})
	req, rec := newRequest(http.MethodPost, "/v1/login", data)
	e.Server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = newRequest(http.MethodGet, "/site/news")
	req.Header.Set("User-Agent", "curl/7.79.1")
	e.Server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/v1/audit/report", token)
	e.Server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var report audit.Report
	decodeBody(t, rec, &report)
	assert.Equal(t, 1, report.FailedLogins)
	assert.Equal(t, 1, report.Suspicious)
	// the report request itself is an admin access event
	assert.True(t, report.TotalEvents >= 3)
	assert.Zero(t, report.SecurityAlerts)
}
