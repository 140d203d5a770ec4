// Package middleware provides the HTTP middleware chain for the movie service.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/filmlane/movie-service/internal/auth"
	"github.com/filmlane/movie-service/internal/errors"
	"github.com/filmlane/movie-service/internal/httputil"
	"github.com/filmlane/movie-service/internal/logging"
)

// AuthMiddleware provides JWT authentication.
type AuthMiddleware struct {
	manager      *auth.Manager
	logger       *logging.Logger
	skipPaths    map[string]bool
	skipPrefixes []string
}

// NewAuthMiddleware creates a new authentication middleware. Skip paths ending
// in "/" are treated as prefixes.
func NewAuthMiddleware(manager *auth.Manager, logger *logging.Logger, skipPaths []string) *AuthMiddleware {
	skip := make(map[string]bool)
	var prefixes []string
	for _, path := range skipPaths {
		if strings.HasSuffix(path, "/") {
			prefixes = append(prefixes, path)
			continue
		}
		skip[path] = true
	}

	return &AuthMiddleware{
		manager:      manager,
		logger:       logger,
		skipPaths:    skip,
		skipPrefixes: prefixes,
	}
}

// Handler returns the middleware handler.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.shouldSkip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.respondError(w, r, errors.Unauthorized("missing Authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.respondError(w, r, errors.Unauthorized("invalid Authorization header format"))
			return
		}

		claims, err := m.manager.ValidateToken(parts[1])
		if err != nil {
			m.logger.WithContext(r.Context()).WithError(err).Warn("token validation failed")
			m.respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), logging.UserIDKey, claims.Username)
		if claims.Role != "" {
			ctx = context.WithValue(ctx, logging.RoleKey, claims.Role)
		}

		m.logger.WithContext(ctx).Debug("authentication successful")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) shouldSkip(path string) bool {
	if m.skipPaths[path] {
		return true
	}
	for _, prefix := range m.skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (m *AuthMiddleware) respondError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.WriteError(w, r, err)

	serviceErr := errors.GetServiceError(err)
	status := http.StatusUnauthorized
	if serviceErr != nil {
		status = serviceErr.HTTPStatus
	}
	m.logger.LogSecurityEvent(r.Context(), "authentication_failed", map[string]interface{}{
		"path":   r.URL.Path,
		"method": r.Method,
		"status": status,
	})
}

// RequireRole ensures the authenticated principal carries one of the allowed
// roles before the wrapped handler runs.
func RequireRole(next http.Handler, roles ...string) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowed[logging.GetRole(r.Context())] {
			httputil.WriteError(w, r, errors.Forbidden(""))
			return
		}
		next.ServeHTTP(w, r)
	})
}
