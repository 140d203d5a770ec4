package httpapi

import (
	"time"

	"github.com/filmlane/movie-service/internal/domain/movie"
	"github.com/filmlane/movie-service/internal/errors"
)

const releaseDateLayout = "2006-01-02"

// movieRequest is the write payload for create and update.
type movieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date"`
}

// movieResponse is the read representation of a catalog entry.
type movieResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// movieListResponse is the paged list representation.
type movieListResponse struct {
	Items  []movieResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role,omitempty"`
	ExpiresAt string `json:"expires_at"`
}

// toDomain maps a request payload onto the domain model. The release date
// accepts a plain date or an RFC3339 timestamp.
func (r movieRequest) toDomain() (movie.Movie, error) {
	m := movie.Movie{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.ReleaseDate == "" {
		return m, nil
	}

	parsed, err := time.Parse(releaseDateLayout, r.ReleaseDate)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, r.ReleaseDate)
	}
	if err != nil {
		return movie.Movie{}, errors.Validation(map[string]string{
			"release_date": "must be a YYYY-MM-DD date or RFC3339 timestamp",
		})
	}
	m.ReleaseDate = parsed.UTC()
	return m, nil
}

func toResponse(m movie.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseDate: m.ReleaseDate.UTC().Format(releaseDateLayout),
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toListResponse(items []movie.Movie, total, limit, offset int) movieListResponse {
	resp := movieListResponse{
		Items:  make([]movieResponse, 0, len(items)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, m := range items {
		resp.Items = append(resp.Items, toResponse(m))
	}
	return resp
}
