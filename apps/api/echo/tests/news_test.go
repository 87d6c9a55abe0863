package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maqomuz/maktab/core/news"
)

func TestApiNewsCRUD(t *testing.T) {
	e := setup(t)
	token := getToken(t, e)

	t.Run("empty query", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/news", token)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	var created news.News

	t.Run("create", func(t *testing.T) {
		data := marshallObj(t, news.NewNews{
			Title:    "Yangi o'quv yili boshlandi",
			Category: "T'alim",
			Excerpt:  "Maktabimizda yangi o'quv yili tantanali ochildi.",
			Date:     "2026-09-02",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/news", token, data)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		decodeBody(t, rec, &created)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Yangi o'quv yili boshlandi", created.Title)
		assert.Equal(t, "2026-09-02", created.Date)
		assert.Equal(t, adminEmail, created.Author)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("create invalid", func(t *testing.T) {
		data := marshallObj(t, news.NewNews{Title: "  ", ImageURL: "rasm"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/news", token, data)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var fields map[string]string
		decodeBody(t, rec, &fields)
		assert.Equal(t, "bu maydon majburiy", fields["title"])
		assert.Contains(t, fields, "image_url")
	})

	t.Run("retrieve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/news/"+created.ID, token)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got news.News
		decodeBody(t, rec, &got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
	})

	t.Run("retrieve unknown", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/news/yoq-id", token)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body httpErr
		decodeBody(t, rec, &body)
		assert.Equal(t, "topilmadi", body.Error)
	})

	t.Run("update", func(t *testing.T) {
		data := marshallObj(t, news.UpdateNews{Title: "Yangilangan sarlavha"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/news/"+created.ID, token, data)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got news.News
		decodeBody(t, rec, &got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Yangilangan sarlavha", got.Title)
		// untouched fields survive
		assert.Equal(t, created.Category, got.Category)
		assert.Equal(t, created.Excerpt, got.Excerpt)
		assert.Equal(t, created.Date, got.Date)
		assert.Equal(t, adminEmail, got.UpdatedBy)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/news/"+created.ID, token)
		e.Server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/news/"+created.ID, token)
		e.Server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// An edit whose target was deleted in the meantime is re-issued as an add so
// the admin's work is not lost.
func TestApiNewsUpdateMissingTarget(t *testing.T) {
	e := setup(t)
	token := getToken(t, e)

	data := marshallObj(t, news.UpdateNews{
		Title:   "Qayta tiklangan yangilik",
		Excerpt: "O'chirib yuborilgan yozuv o'rniga yangisi ochiladi.",
		Date:    "2026-05-01",
	})
	req, rec := newAuthRequest(http.MethodPut, "/v1/news/ochirilgan-id", token, data)
	e.Server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got news.News
	decodeBody(t, rec, &got)
	assert.NotEmpty(t, got.ID)
	assert.NotEqual(t, "ochirilgan-id", got.ID)
	assert.Equal(t, "Qayta tiklangan yangilik", got.Title)
	assert.Equal(t, "2026-05-01", got.Date)
}

func TestApiNewsQueryOptions(t *testing.T) {
	e := setup(t)
	token := getToken(t, e)

	for _, item := range []struct{ title, date string }{
		{"Avgust xabari", "2026-08-01"},
		{"Iyun xabari", "2026-06-01"},
		{"Iyul xabari", "2026-07-01"},
	} {
		data := marshallObj(t, news.NewNews{Title: item.title, Date: item.date})
		req, rec := newAuthRequest(http.MethodPost, "/v1/news", token, data)
		e.Server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("default ordering is date desc", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/news", token)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var items []news.News
		decodeBody(t, rec, &items)
		if assert.Len(t, items, 3) {
			assert.Equal(t, "Avgust xabari", items[0].Title)
			assert.Equal(t, "Iyul xabari", items[1].Title)
			assert.Equal(t, "Iyun xabari", items[2].Title)
		}
	})

	t.Run("limit", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/news?limit=2", token)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var items []news.News
		decodeBody(t, rec, &items)
		assert.Len(t, items, 2)
	})

	t.Run("ascending ordering", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/news?ordering=date", token)
		e.Server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var items []news.News
		decodeBody(t, rec, &items)
		if assert.Len(t, items, 3) {
			assert.Equal(t, "Iyun xabari", items[0].Title)
		}
	})
}
