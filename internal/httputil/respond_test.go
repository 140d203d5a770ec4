package httputil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/filmlane/movie-service/internal/errors"
	"github.com/filmlane/movie-service/internal/logging"
)

func TestWriteErrorEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/x", nil)
	req = req.WithContext(logging.WithCorrelationID(req.Context(), "corr-123"))
	rec := httptest.NewRecorder()

	WriteError(rec, req, errors.NotFound("movie", "x"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var envelope struct {
		Error ErrorBody `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != errors.CodeNotFound {
		t.Errorf("code = %s", envelope.Error.Code)
	}
	if envelope.Error.Category != errors.CategoryService {
		t.Errorf("category = %s", envelope.Error.Category)
	}
	if envelope.Error.CorrelationID != "corr-123" {
		t.Errorf("correlation id = %q", envelope.Error.CorrelationID)
	}
}

func TestWriteErrorHidesNonServiceErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, io.ErrUnexpectedEOF)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "EOF") {
		t.Errorf("internal error leaked to client: %s", body)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	body := io.NopCloser(strings.NewReader(`{"title":"x","bogus":true}`))

	var dst struct {
		Title string `json:"title"`
	}
	err := DecodeJSON(body, &dst)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	svcErr := errors.GetServiceError(err)
	if svcErr == nil || svcErr.Code != errors.CodeBadRequest {
		t.Errorf("expected BAD_REQUEST, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["id"] != "abc" {
		t.Errorf("body = %v", out)
	}
}
