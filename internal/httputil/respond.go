// Package httputil contains JSON request/response helpers shared by the
// middleware chain and the HTTP handlers.
package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/filmlane/movie-service/internal/errors"
	"github.com/filmlane/movie-service/internal/logging"
)

// ErrorBody is the uniform error envelope returned by every failing request.
type ErrorBody struct {
	Code          errors.Code            `json:"code"`
	Category      errors.Category        `json:"category"`
	Message       string                 `json:"message"`
	Details       map[string]interface{} `json:"details,omitempty"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// WriteJSON serializes data with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError serializes err as the error envelope. Errors that are not
// service errors are reported as a generic internal failure so internals do
// not leak to clients.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := errors.GetServiceError(err)
	if serviceErr == nil {
		serviceErr = errors.Internal("", err)
	}

	WriteJSON(w, serviceErr.HTTPStatus, errorEnvelope{Error: ErrorBody{
		Code:          serviceErr.Code,
		Category:      serviceErr.Category,
		Message:       serviceErr.Message,
		Details:       serviceErr.Details,
		CorrelationID: logging.GetCorrelationID(r.Context()),
	}})
}

// DecodeJSON decodes a request body, rejecting unknown fields.
func DecodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.BadRequest("invalid JSON body: " + err.Error())
	}
	return nil
}
