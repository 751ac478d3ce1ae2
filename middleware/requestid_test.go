package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsHandler(t *testing.T, origins []string, reached *bool) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
	return CORSMiddleware(origins)(next)
}

func TestCORSMiddleware_AllowedOriginHeaders(t *testing.T) {
	var reached bool
	handler := corsHandler(t, []string{"https://painel.example.org"}, &reached)

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Origin", "https://painel.example.org")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, reached)
	assert.Equal(t, "https://painel.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSMiddleware_PreflightFromAllowedOrigin(t *testing.T) {
	var reached bool
	handler := corsHandler(t, []string{"https://painel.example.org"}, &reached)

	req := httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	req.Header.Set("Origin", "https://painel.example.org")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, reached, "preflight should be answered by the middleware")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, POST, PATCH, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSMiddleware_PreflightFromUnknownOriginFallsThrough(t *testing.T) {
	var reached bool
	handler := corsHandler(t, []string{"https://painel.example.org"}, &reached)

	req := httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	req.Header.Set("Origin", "https://intruso.example.net")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, reached, "disallowed preflight goes to the mux")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSMiddleware_OptionsWithoutOriginFallsThrough(t *testing.T) {
	var reached bool
	handler := corsHandler(t, []string{"*"}, &reached)

	req := httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, reached)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_WildcardOrigin(t *testing.T) {
	var reached bool
	handler := corsHandler(t, []string{"*"}, &reached)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Origin", "https://qualquer.example.org")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, reached)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
