package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h, err := Handler(api)
	require.NoError(t, err)
	return h
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestHandler_Index(t *testing.T) {
	w := get(newHandler(t), "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Change Enablement")
}

func TestHandler_Asset(t *testing.T) {
	w := get(newHandler(t), "/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/recommend")
}

func TestHandler_MissingAsset(t *testing.T) {
	w := get(newHandler(t), "/missing.css")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Fallback(t *testing.T) {
	w := get(newHandler(t), "/assess")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Change Enablement")
}

func TestHandler_API(t *testing.T) {
	w := get(newHandler(t), "/api/v1/dimensions")
	assert.Equal(t, http.StatusTeapot, w.Code)
}
