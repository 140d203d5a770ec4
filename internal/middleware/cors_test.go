package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsRequest(method, origin string) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/movies", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestCORSAllowAll(t *testing.T) {
	mw := NewCORSMiddleware([]string{"*"})
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodGet, "https://example.com"))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); got != CorrelationHeader {
		t.Errorf("expose-headers = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	mw := NewCORSMiddleware([]string{"*"})
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodOptions, "https://example.com"))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("allow-methods not set on preflight")
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	mw := NewCORSMiddleware([]string{"https://app.example.com"})
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodGet, "https://app.example.com"))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allowed origin rejected: %q", got)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodGet, "https://evil.test"))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin accepted: %q", got)
	}
}

func TestCORSRejectsLookalikeOrigins(t *testing.T) {
	mw := NewCORSMiddleware([]string{"https://app.example.com"})
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, origin := range []string{
		"https://evil-app.example.com.attacker.net",
		"https://notapp.example.com",
		"https://xapp.example.com",
	} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, corsRequest(http.MethodGet, origin))
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("lookalike origin %q accepted: %q", origin, got)
		}
	}
}

func TestCORSSubdomainEntries(t *testing.T) {
	mw := NewCORSMiddleware([]string{".example.com"})
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodGet, "https://app.example.com"))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("subdomain rejected: %q", got)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodGet, "https://evil-example.com"))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("lookalike accepted under dot entry: %q", got)
	}
}
