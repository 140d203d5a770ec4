// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/filmlane/movie-service/internal/domain/movie"
	"github.com/filmlane/movie-service/internal/storage"
)

// Store implements storage.MovieStore on top of a PostgreSQL database.
type Store struct {
	db *sqlx.DB
}

var _ storage.MovieStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL, applies pool settings and verifies the
// connection with a bounded ping.
func Open(ctx context.Context, dsn string, maxOpen, maxIdle int, connMaxLifetime time.Duration) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if connMaxLifetime > 0 {
		db.SetConnMaxLifetime(connMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type movieRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	ReleaseDate time.Time `db:"release_date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r movieRow) toDomain() movie.Movie {
	return movie.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ReleaseDate: r.ReleaseDate.UTC(),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func (s *Store) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (id, title, description, release_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.Title, m.Description, m.ReleaseDate, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return movie.Movie{}, err
	}
	return m, nil
}

func (s *Store) UpdateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	existing, err := s.GetMovie(ctx, m.ID)
	if err != nil {
		return movie.Movie{}, err
	}

	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE movies
		SET title = $2, description = $3, release_date = $4, updated_at = $5
		WHERE id = $1
	`, m.ID, m.Title, m.Description, m.ReleaseDate, m.UpdatedAt)
	if err != nil {
		return movie.Movie{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return movie.Movie{}, storage.ErrNotFound
	}
	return m, nil
}

func (s *Store) GetMovie(ctx context.Context, id string) (movie.Movie, error) {
	var row movieRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, title, description, release_date, created_at, updated_at
		FROM movies
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return movie.Movie{}, storage.ErrNotFound
	}
	if err != nil {
		return movie.Movie{}, err
	}
	return row.toDomain(), nil
}

func (s *Store) ListMovies(ctx context.Context, limit, offset int) ([]movie.Movie, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rows []movieRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, title, description, release_date, created_at, updated_at
		FROM movies
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]movie.Movie, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) CountMovies(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM movies`); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) DeleteMovie(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}
