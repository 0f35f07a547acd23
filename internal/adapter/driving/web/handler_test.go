package web

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex_RendersUploadForm(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, NewHandler("/upload", "excelFile", slog.Default()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `<!DOCTYPE html>`)
	assert.Contains(t, body, `action="/upload"`)
	assert.Contains(t, body, `name="excelFile"`)
	assert.Contains(t, body, `enctype="multipart/form-data"`)
	assert.Contains(t, body, `<li>Duration (months)</li>`)
}

func TestLayout_EscapesTitle(t *testing.T) {
	rec := httptest.NewRecorder()
	err := Layout("<b>x</b>", UploadForm("/upload", "excelFile", nil)).Render(t.Context(), rec)

	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "<title>&lt;b&gt;x&lt;/b&gt;</title>")
}
