// Package app wires configuration, storage, services and the HTTP server into
// a runnable application.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/filmlane/movie-service/internal/auth"
	"github.com/filmlane/movie-service/internal/config"
	"github.com/filmlane/movie-service/internal/httpapi"
	"github.com/filmlane/movie-service/internal/logging"
	"github.com/filmlane/movie-service/internal/metrics"
	"github.com/filmlane/movie-service/internal/middleware"
	"github.com/filmlane/movie-service/internal/service/health"
	"github.com/filmlane/movie-service/internal/service/movies"
	"github.com/filmlane/movie-service/internal/storage"
	"github.com/filmlane/movie-service/internal/storage/memory"
	"github.com/filmlane/movie-service/internal/storage/postgres"
)

const seedCount = 50

// Application ties the service components together and manages the HTTP
// server lifecycle.
type Application struct {
	cfg        *config.Config
	log        *logging.Logger
	httpServer *http.Server
	healthSvc  *health.Service
	moviesSvc  *movies.Service
	db         *sqlx.DB
	done       chan struct{}
}

// New builds a fully initialised application from configuration.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logging.New(cfg.Logging)

	store, db, err := buildStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("configure store: %w", err)
	}

	moviesSvc := movies.New(store, log)
	healthSvc := health.NewService()
	healthSvc.Register("runtime", func(context.Context) error { return nil })
	if db != nil {
		healthSvc.Register("database", func(ctx context.Context) error {
			return db.PingContext(ctx)
		})
	} else {
		healthSvc.Register("database", func(ctx context.Context) error {
			_, err := store.CountMovies(ctx)
			return err
		})
	}

	authMgr := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Users, cfg.Auth.TTL())

	handler := httpapi.NewHandler(moviesSvc, healthSvc, authMgr, log)

	done := make(chan struct{})
	chain := buildMiddlewareChain(cfg, log, authMgr, handler.Router(), done)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      chain,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return &Application{
		cfg:        cfg,
		log:        log,
		httpServer: httpServer,
		healthSvc:  healthSvc,
		moviesSvc:  moviesSvc,
		db:         db,
		done:       done,
	}, nil
}

// Handler exposes the assembled middleware chain, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is cancelled or the
// server fails.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.log.Infof("HTTP server listening on %s", a.cfg.Server.Addr())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully drains the HTTP server and closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	close(a.done)

	timeout := time.Duration(a.cfg.Server.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.WithError(err).Warn("error closing database connection")
		}
	}
	return nil
}

func buildStore(ctx context.Context, cfg *config.Config, log *logging.Logger) (storage.MovieStore, *sqlx.DB, error) {
	if cfg.Database.DSN == "" {
		log.Warn("DATABASE_URL not set; using in-memory store")
		store := memory.New()
		if err := storage.SeedPlaceholders(ctx, store, seedCount); err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}

	db, err := postgres.Open(ctx, cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		time.Duration(cfg.Database.ConnMaxLifetime)*time.Second,
	)
	if err != nil {
		return nil, nil, err
	}

	if err := postgres.Apply(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}

	return postgres.New(db), db, nil
}

func buildMiddlewareChain(cfg *config.Config, log *logging.Logger, authMgr *auth.Manager, router http.Handler, done <-chan struct{}) http.Handler {
	skipAuth := []string{"/health", "/health/", "/swagger", "/swagger/", "/metrics", "/auth/login"}

	handler := metrics.InstrumentHandler(router)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		limiter.StartCleanup(5*time.Minute, done)
		handler = limiter.Handler(handler)
	}

	handler = middleware.NewAuthMiddleware(authMgr, log, skipAuth).Handler(handler)
	handler = middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins).Handler(handler)
	handler = middleware.NewCorrelationMiddleware(log).Handler(handler)
	handler = middleware.NewRecoveryMiddleware(log).Handler(handler)

	return handler
}
