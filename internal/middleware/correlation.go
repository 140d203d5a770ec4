package middleware

import (
	"net/http"
	"time"

	"github.com/filmlane/movie-service/internal/logging"
)

// CorrelationHeader is the request/response header carrying the per-request
// correlation identifier.
const CorrelationHeader = "X-Correlation-ID"

// CorrelationMiddleware attaches a correlation ID to every request and emits
// the access log line.
type CorrelationMiddleware struct {
	logger *logging.Logger
}

// NewCorrelationMiddleware creates a new correlation middleware.
func NewCorrelationMiddleware(logger *logging.Logger) *CorrelationMiddleware {
	return &CorrelationMiddleware{logger: logger}
}

// Handler returns the correlation middleware handler.
func (m *CorrelationMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(CorrelationHeader)
		if correlationID == "" {
			correlationID = logging.NewCorrelationID()
		}

		ctx := logging.WithCorrelationID(r.Context(), correlationID)
		w.Header().Set(CorrelationHeader, correlationID)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rw, r.WithContext(ctx))

		m.logger.LogRequest(ctx, r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}
