package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/filmlane/movie-service/internal/domain/movie"
	"github.com/filmlane/movie-service/internal/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local development.
type Store struct {
	mu     sync.RWMutex
	movies map[string]movie.Movie
}

var _ storage.MovieStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{movies: make(map[string]movie.Movie)}
}

func (s *Store) CreateMovie(_ context.Context, m movie.Movie) (movie.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.NewString()
	} else if _, exists := s.movies[m.ID]; exists {
		return movie.Movie{}, fmt.Errorf("movie %s already exists", m.ID)
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	s.movies[m.ID] = m
	return m, nil
}

func (s *Store) UpdateMovie(_ context.Context, m movie.Movie) (movie.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.movies[m.ID]
	if !ok {
		return movie.Movie{}, storage.ErrNotFound
	}

	m.CreatedAt = original.CreatedAt
	m.UpdatedAt = time.Now().UTC()

	s.movies[m.ID] = m
	return m, nil
}

func (s *Store) GetMovie(_ context.Context, id string) (movie.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movies[id]
	if !ok {
		return movie.Movie{}, storage.ErrNotFound
	}
	return m, nil
}

func (s *Store) ListMovies(_ context.Context, limit, offset int) ([]movie.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]movie.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []movie.Movie{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *Store) CountMovies(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies), nil
}

func (s *Store) DeleteMovie(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.movies, id)
	return nil
}
