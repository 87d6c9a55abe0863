package tests

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	. "github.com/maqomuz/maktab/apps/api/echo"
	"github.com/maqomuz/maktab/core/contact"
	"github.com/maqomuz/maktab/core/employee"
	emailsvc "github.com/maqomuz/maktab/services/email"
	testutil "github.com/maqomuz/maktab/tests"
)

func TestApiSiteNews(t *testing.T) {
	e := setup(t)

	longExcerpt := strings.Repeat("maqom san'ati ", 20) // well past the card cut
	n1 := testutil.CreateNews(t, e.NewsRepo, "Konsert e'loni", "2026-06-15")
	n1.Excerpt = longExcerpt
	if _, err := e.NewsRepo.Update(context.Background(), n1); err != nil {
		t.Fatalf("updating news failed: %v", err)
	}
	// dateless records sort by CreatedAt; pin it before the dated items so the
	// expected order holds on any wall clock
	testutil.CreateNews(t, e.NewsRepo, "", "", time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC))
	testutil.CreateNews(t, e.NewsRepo, "Ochiq eshiklar kuni", "2026-06-20")

	req, rec := newRequest(http.MethodGet, "/site/news")
	e.Server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var page NewsPage
	decodeBody(t, rec, &page)

	if !assert.Len(t, page.Items, 3) {
		return
	}
	// date desc, dateless record sorts last
	assert.Equal(t, "Ochiq eshiklar kuni", page.Items[0].Title)
	assert.Equal(t, "Konsert e'loni", page.Items[1].Title)

	placeholder := page.Items[2]
	assert.Equal(t, "Yangilik", placeholder.Title)
	assert.NotEmpty(t, placeholder.Date)

	truncated := page.Items[1].Excerpt
	assert.True(t, strings.HasSuffix(truncated, "..."))
	assert.True(t, utf8.RuneCountInString(truncated) < utf8.RuneCountInString(longExcerpt))

	assert.Equal(t, int64(5000), page.Carousel.IntervalMS)
	assert.Equal(t, int64(500), page.Carousel.SettleMS)
	assert.Equal(t, 3, page.Carousel.Layout.Items)
	assert.Equal(t, 3, page.Carousel.Layout.SlidesSmall)
	assert.Equal(t, 2, page.Carousel.Layout.SlidesMedium)
	assert.Equal(t, 1, page.Carousel.Layout.SlidesLarge)
}

func TestApiSiteNewsDefaultLimit(t *testing.T) {
	e := setup(t)

	for i := 0; i < 12; i++ {
		testutil.CreateNews(t, e.NewsRepo, "Yangilik", "2026-01-02")
	}

	req, rec := newRequest(http.MethodGet, "/site/news")
	e.Server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var page NewsPage
	decodeBody(t, rec, &page)
	assert.Len(t, page.Items, e.Conf.UI.PaginationLimit)
}

func TestApiSiteEmployees(t *testing.T) {
	e := setup(t)

	t.Run("empty", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/site/employees")
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestApiSiteEmployeesListing(t *testing.T) {
	e := setup(t)
	testutil.CreateEmployee(t, e.EmpRepo, "Aziza Yusupova", "Direktor")
	testutil.CreateEmployee(t, e.EmpRepo, "Rustam Nazarov", "Dutor ustozi")

	req, rec := newRequest(http.MethodGet, "/site/employees")
	e.Server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var emps []employee.Employee
	decodeBody(t, rec, &emps)
	assert.Len(t, emps, 2)
}

func TestApiSiteContact(t *testing.T) {
	e := setup(t)

	t.Run("ok", func(t *testing.T) {
		emailsvc.ResetSentMessages()

		data := marshallObj(t, contact.Message{
			Name:  "Gulnora Tosheva",
			Email: "gulnora@umail.uz",
			Phone: "+998 93 123 45 67",
			Body:  "Farzandimni maktabingizga qabul qilish shartlari haqida ma'lumot bering.",
		})
		req, rec := newRequest(http.MethodPost, "/site/contact", data)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		var body SuccessResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "Xabaringiz yuborildi. Tez orada siz bilan bog'lanamiz.", body.Success)

		if assert.Equal(t, 1, emailsvc.SentCount()) {
			sent := emailsvc.SentMessages[0]
			assert.Equal(t, "Saytdan yangi murojaat", sent.Subject)
			assert.Equal(t, e.Conf.ContactEmail.Address, sent.To[0].Address)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		emailsvc.ResetSentMessages()

		data := marshallObj(t, contact.Message{Name: "G", Email: "umail.uz", Phone: "123", Body: "qisqa"})
		req, rec := newRequest(http.MethodPost, "/site/contact", data)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var fields map[string]string
		decodeBody(t, rec, &fields)
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "phone")
		assert.Contains(t, fields, "message")
		assert.Zero(t, emailsvc.SentCount())
	})
}

func TestApiHome(t *testing.T) {
	e := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	e.Server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Farg'ona maqom maktab-internati API", rec.Body.String())
}
