package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Ordered schema statements. Each statement is idempotent so Apply can run on
// every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		release_date TIMESTAMPTZ NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_created_at ON movies (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_release_date ON movies (release_date)`,
	// Seed 50 placeholder rows, only when the table is empty.
	`INSERT INTO movies (id, title, description, release_date, created_at, updated_at)
	SELECT gen_random_uuid()::text,
	       'Placeholder Movie ' || lpad(n::text, 2, '0'),
	       'Seeded placeholder entry ' || n,
	       date '1975-06-01' + (n - 1) * interval '1 year',
	       now(),
	       now()
	FROM generate_series(1, 50) AS n
	WHERE NOT EXISTS (SELECT 1 FROM movies)`,
}

// Apply runs all schema migrations in order.
func Apply(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
