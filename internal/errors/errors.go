// Package errors defines the service error taxonomy and its mapping to HTTP
// status codes. Every error surfaced to a client is one of these, serialized
// as a uniform JSON envelope by the HTTP layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Category groups error codes into the closed set used by the error envelope.
type Category string

const (
	CategoryGeneral        Category = "General"
	CategoryService        Category = "Service"
	CategoryValidation     Category = "Validation"
	CategoryWarning        Category = "Warning"
	CategoryAuthentication Category = "Authentication"
	CategorySecurity       Category = "Security"
)

// Code identifies a specific error condition.
type Code string

const (
	CodeInternal          Code = "INTERNAL_ERROR"
	CodeBadRequest        Code = "BAD_REQUEST"
	CodeNotFound          Code = "NOT_FOUND"
	CodeMethodNotAllowed  Code = "METHOD_NOT_ALLOWED"
	CodeValidationFailed  Code = "VALIDATION_FAILED"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeInvalidToken      Code = "INVALID_TOKEN"
	CodeForbidden         Code = "FORBIDDEN"
	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"
	CodeConflict          Code = "CONFLICT"
)

// ServiceError is the canonical error type crossing the service boundary.
type ServiceError struct {
	Code       Code                   `json:"code"`
	Category   Category               `json:"category"`
	Message    string                 `json:"message"`
	HTTPStatus int                    `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
	cause      error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ServiceError) Unwrap() error {
	return e.cause
}

// WithDetails attaches a detail entry and returns the error for chaining.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Internal wraps an unexpected failure. The message is safe for clients; the
// cause is only surfaced through logs.
func Internal(message string, cause error) *ServiceError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &ServiceError{
		Code:       CodeInternal,
		Category:   CategoryGeneral,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		cause:      cause,
	}
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(message string) *ServiceError {
	return &ServiceError{
		Code:       CodeBadRequest,
		Category:   CategoryGeneral,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound reports a missing resource.
func NotFound(resource, id string) *ServiceError {
	return &ServiceError{
		Code:       CodeNotFound,
		Category:   CategoryService,
		Message:    fmt.Sprintf("%s %s not found", resource, id),
		HTTPStatus: http.StatusNotFound,
	}
}

// MethodNotAllowed reports an unsupported HTTP method on a known route.
func MethodNotAllowed(method string) *ServiceError {
	return &ServiceError{
		Code:       CodeMethodNotAllowed,
		Category:   CategoryGeneral,
		Message:    fmt.Sprintf("method %s not allowed", method),
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// Validation reports failed field validation. Field errors are carried in
// details under "fields".
func Validation(fields map[string]string) *ServiceError {
	err := &ServiceError{
		Code:       CodeValidationFailed,
		Category:   CategoryValidation,
		Message:    "request validation failed",
		HTTPStatus: http.StatusBadRequest,
	}
	if len(fields) > 0 {
		err.WithDetails("fields", fields)
	}
	return err
}

// Unauthorized reports a missing or unusable credential.
func Unauthorized(message string) *ServiceError {
	if message == "" {
		message = "authentication required"
	}
	return &ServiceError{
		Code:       CodeUnauthorized,
		Category:   CategoryAuthentication,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken reports a token that failed parsing or signature validation.
func InvalidToken(cause error) *ServiceError {
	return &ServiceError{
		Code:       CodeInvalidToken,
		Category:   CategoryAuthentication,
		Message:    "invalid or expired token",
		HTTPStatus: http.StatusUnauthorized,
		cause:      cause,
	}
}

// Forbidden reports an authenticated principal lacking permission.
func Forbidden(message string) *ServiceError {
	if message == "" {
		message = "insufficient permissions"
	}
	return &ServiceError{
		Code:       CodeForbidden,
		Category:   CategorySecurity,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// RateLimitExceeded reports that the caller exhausted its request budget.
func RateLimitExceeded(limit int, window string) *ServiceError {
	return &ServiceError{
		Code:       CodeRateLimitExceeded,
		Category:   CategoryWarning,
		Message:    "rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
		Details: map[string]interface{}{
			"limit":  limit,
			"window": window,
		},
	}
}

// Conflict reports a state conflict (duplicate create, concurrent update).
func Conflict(message string) *ServiceError {
	return &ServiceError{
		Code:       CodeConflict,
		Category:   CategoryService,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// GetServiceError extracts a *ServiceError from an error chain, or nil.
func GetServiceError(err error) *ServiceError {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}
	return nil
}
