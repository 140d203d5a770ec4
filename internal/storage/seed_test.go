package storage_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/filmlane/movie-service/internal/domain/movie"
	"github.com/filmlane/movie-service/internal/storage"
	"github.com/filmlane/movie-service/internal/storage/memory"
)

func TestSeedPlaceholdersFillsEmptyStore(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	if err := storage.SeedPlaceholders(ctx, store, 50); err != nil {
		t.Fatalf("seed: %v", err)
	}

	count, err := store.CountMovies(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 50 {
		t.Fatalf("count = %d, want 50", count)
	}

	items, err := store.ListMovies(ctx, 100, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, m := range items {
		if !strings.HasPrefix(m.Title, "Placeholder Movie ") {
			t.Errorf("unexpected title %q", m.Title)
		}
	}
}

func TestSeedPlaceholdersDeterministicDates(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	if err := storage.SeedPlaceholders(ctx, store, 3); err != nil {
		t.Fatalf("seed: %v", err)
	}

	items, err := store.ListMovies(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	wantFirst := time.Date(1975, time.June, 1, 0, 0, 0, 0, time.UTC)
	dates := map[string]time.Time{}
	for _, m := range items {
		dates[m.Title] = m.ReleaseDate
	}
	if got := dates["Placeholder Movie 01"]; !got.Equal(wantFirst) {
		t.Errorf("first release date = %v, want %v", got, wantFirst)
	}
	if got := dates["Placeholder Movie 03"]; !got.Equal(wantFirst.AddDate(2, 0, 0)) {
		t.Errorf("third release date = %v", got)
	}
}

func TestSeedPlaceholdersIdempotent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	if _, err := store.CreateMovie(ctx, movie.Movie{
		Title:       "Existing",
		ReleaseDate: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := storage.SeedPlaceholders(ctx, store, 50); err != nil {
		t.Fatalf("seed: %v", err)
	}

	count, err := store.CountMovies(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("seed ran on non-empty store, count = %d", count)
	}
}
