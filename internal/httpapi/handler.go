// Package httpapi exposes the movie catalog REST API.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/filmlane/movie-service/internal/auth"
	"github.com/filmlane/movie-service/internal/errors"
	"github.com/filmlane/movie-service/internal/httputil"
	"github.com/filmlane/movie-service/internal/logging"
	"github.com/filmlane/movie-service/internal/metrics"
	"github.com/filmlane/movie-service/internal/middleware"
	"github.com/filmlane/movie-service/internal/service/health"
	"github.com/filmlane/movie-service/internal/service/movies"
)

// Roles permitted to mutate the catalog.
var editorRoles = []string{"admin", "editor"}

// Handler bundles the HTTP endpoints of the service.
type Handler struct {
	movies  *movies.Service
	health  *health.Service
	authMgr *auth.Manager
	log     *logging.Logger
}

// NewHandler constructs the handler set.
func NewHandler(moviesSvc *movies.Service, healthSvc *health.Service, authMgr *auth.Manager, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewDefault("httpapi")
	}
	return &Handler{
		movies:  moviesSvc,
		health:  healthSvc,
		authMgr: authMgr,
		log:     log,
	}
}

// Router builds the route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)

	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/movies", h.listMovies).Methods(http.MethodGet)
	api.Handle("/movies", h.requireEditor(h.createMovie)).Methods(http.MethodPost)
	api.HandleFunc("/movies/{id}", h.getMovie).Methods(http.MethodGet)
	api.Handle("/movies/{id}", h.requireEditor(h.updateMovie)).Methods(http.MethodPut)
	api.Handle("/movies/{id}", h.requireEditor(h.deleteMovie)).Methods(http.MethodDelete)

	r.HandleFunc("/health", h.healthAll).Methods(http.MethodGet)
	r.HandleFunc("/health/{tag}", h.healthTag).Methods(http.MethodGet)

	r.HandleFunc("/swagger", h.swaggerIndex).Methods(http.MethodGet)
	r.HandleFunc("/swagger/openapi.yaml", h.swaggerDocument).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

func (h *Handler) requireEditor(fn http.HandlerFunc) http.Handler {
	return middleware.RequireRole(fn, editorRoles...)
}

// --- Auth -------------------------------------------------------------------

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	token, claims, err := h.authMgr.Authenticate(payload.Username, payload.Password)
	if err != nil {
		h.log.LogSecurityEvent(r.Context(), "login_failed", map[string]interface{}{
			"username": payload.Username,
		})
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		Username:  claims.Username,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
	})
}

// --- Movies -----------------------------------------------------------------

func (h *Handler) listMovies(w http.ResponseWriter, r *http.Request) {
	// clamp before responding so the echoed values match the served page
	limit, offset := movies.ClampPage(queryInt(r, "limit", 50), queryInt(r, "offset", 0))

	items, total, err := h.movies.List(r.Context(), limit, offset)
	metrics.RecordMovieOperation("list", err)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(items, total, limit, offset))
}

func (h *Handler) getMovie(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	m, err := h.movies.Get(r.Context(), id)
	metrics.RecordMovieOperation("get", err)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) createMovie(w http.ResponseWriter, r *http.Request) {
	var payload movieRequest
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	m, err := payload.toDomain()
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	created, err := h.movies.Create(r.Context(), m)
	metrics.RecordMovieOperation("create", err)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) updateMovie(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload movieRequest
	if err := httputil.DecodeJSON(r.Body, &payload); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	m, err := payload.toDomain()
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	m.ID = id

	updated, err := h.movies.Update(r.Context(), m)
	metrics.RecordMovieOperation("update", err)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.movies.Delete(r.Context(), id)
	metrics.RecordMovieOperation("delete", err)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Health -----------------------------------------------------------------

func (h *Handler) healthAll(w http.ResponseWriter, r *http.Request) {
	report := h.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != health.StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, report)
}

func (h *Handler) healthTag(w http.ResponseWriter, r *http.Request) {
	result := h.health.CheckTag(r.Context(), mux.Vars(r)["tag"])
	status := http.StatusOK
	switch result.Status {
	case health.StatusUnknown:
		status = http.StatusNotFound
	case health.StatusUnhealthy:
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, result)
}

// --- Fallbacks --------------------------------------------------------------

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, r, errors.NotFound("route", r.URL.Path))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, r, errors.MethodNotAllowed(r.Method))
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
