package middleware

import (
	"net/http"

	"github.com/filmlane/movie-service/internal/errors"
	"github.com/filmlane/movie-service/internal/httputil"
	"github.com/filmlane/movie-service/internal/logging"
)

// RecoveryMiddleware converts handler panics into the uniform error envelope.
type RecoveryMiddleware struct {
	logger *logging.Logger
}

// NewRecoveryMiddleware creates a new recovery middleware.
func NewRecoveryMiddleware(logger *logging.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{logger: logger}
}

// Handler returns the recovery middleware handler.
func (m *RecoveryMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.WithContext(r.Context()).WithField("panic", rec).Error("handler panic recovered")
				httputil.WriteError(w, r, errors.Internal("", nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
