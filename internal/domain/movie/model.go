package movie

import "time"

// Movie is a catalog entry.
type Movie struct {
	ID          string
	Title       string
	Description string
	ReleaseDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
