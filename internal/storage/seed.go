package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/filmlane/movie-service/internal/domain/movie"
)

// SeedPlaceholders fills an empty store with deterministic placeholder movies.
// It mirrors the seed applied by the SQL migrations and is a no-op when the
// store already has data.
func SeedPlaceholders(ctx context.Context, store MovieStore, count int) error {
	existing, err := store.CountMovies(ctx)
	if err != nil {
		return fmt.Errorf("count movies: %w", err)
	}
	if existing > 0 {
		return nil
	}

	base := time.Date(1975, time.June, 1, 0, 0, 0, 0, time.UTC)
	for n := 1; n <= count; n++ {
		m := movie.Movie{
			Title:       fmt.Sprintf("Placeholder Movie %02d", n),
			Description: fmt.Sprintf("Seeded placeholder entry %d", n),
			ReleaseDate: base.AddDate(n-1, 0, 0),
		}
		if _, err := store.CreateMovie(ctx, m); err != nil {
			return fmt.Errorf("seed movie %d: %w", n, err)
		}
	}
	return nil
}
