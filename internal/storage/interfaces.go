package storage

import (
	"context"

	"github.com/filmlane/movie-service/internal/domain/movie"
)

// MovieStore persists movie records.
type MovieStore interface {
	CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error)
	UpdateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error)
	GetMovie(ctx context.Context, id string) (movie.Movie, error)
	ListMovies(ctx context.Context, limit, offset int) ([]movie.Movie, error)
	CountMovies(ctx context.Context) (int, error)
	DeleteMovie(ctx context.Context, id string) error
}
