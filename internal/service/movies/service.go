// Package movies implements the movie catalog service layer: validation,
// business rules and delegation to the configured store.
package movies

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/filmlane/movie-service/internal/domain/movie"
	"github.com/filmlane/movie-service/internal/errors"
	"github.com/filmlane/movie-service/internal/logging"
	"github.com/filmlane/movie-service/internal/storage"
)

// Service manages movie catalog entries.
type Service struct {
	store     storage.MovieStore
	validator *Validator
	log       *logging.Logger
}

// New constructs a movie service.
func New(store storage.MovieStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("movies")
	}
	return &Service{
		store:     store,
		validator: NewValidator(),
		log:       log,
	}
}

// Create validates and persists a new movie.
func (s *Service) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	m.Title = strings.TrimSpace(m.Title)
	if problems := s.validator.Validate(m); len(problems) > 0 {
		return movie.Movie{}, errors.Validation(problems)
	}

	created, err := s.store.CreateMovie(ctx, m)
	if err != nil {
		return movie.Movie{}, errors.Internal("failed to create movie", err)
	}
	s.log.WithContext(ctx).Infof("movie %s created", created.ID)
	return created, nil
}

// Update replaces the mutable fields of an existing movie.
func (s *Service) Update(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	m.Title = strings.TrimSpace(m.Title)
	if problems := s.validator.Validate(m); len(problems) > 0 {
		return movie.Movie{}, errors.Validation(problems)
	}

	updated, err := s.store.UpdateMovie(ctx, m)
	if stderrors.Is(err, storage.ErrNotFound) {
		return movie.Movie{}, errors.NotFound("movie", m.ID)
	}
	if err != nil {
		return movie.Movie{}, errors.Internal("failed to update movie", err)
	}
	s.log.WithContext(ctx).Infof("movie %s updated", updated.ID)
	return updated, nil
}

// Get retrieves a movie by identifier.
func (s *Service) Get(ctx context.Context, id string) (movie.Movie, error) {
	m, err := s.store.GetMovie(ctx, id)
	if stderrors.Is(err, storage.ErrNotFound) {
		return movie.Movie{}, errors.NotFound("movie", id)
	}
	if err != nil {
		return movie.Movie{}, errors.Internal("failed to load movie", err)
	}
	return m, nil
}

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ClampPage bounds list parameters to the page actually served. Out-of-range
// limits fall back to the default page size; negative offsets become zero.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// List returns a page of movies plus the total catalog size.
func (s *Service) List(ctx context.Context, limit, offset int) ([]movie.Movie, int, error) {
	limit, offset = ClampPage(limit, offset)

	items, err := s.store.ListMovies(ctx, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("failed to list movies", err)
	}
	total, err := s.store.CountMovies(ctx)
	if err != nil {
		return nil, 0, errors.Internal("failed to count movies", err)
	}
	return items, total, nil
}

// Delete removes a movie.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteMovie(ctx, id)
	if stderrors.Is(err, storage.ErrNotFound) {
		return errors.NotFound("movie", id)
	}
	if err != nil {
		return errors.Internal("failed to delete movie", err)
	}
	s.log.WithContext(ctx).Infof("movie %s deleted", id)
	return nil
}
