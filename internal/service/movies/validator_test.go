package movies

import (
	"strings"
	"testing"
	"time"

	"github.com/filmlane/movie-service/internal/domain/movie"
)

func validMovie() movie.Movie {
	return movie.Movie{
		Title:       "The Long Goodbye",
		Description: "A private eye gets in over his head.",
		ReleaseDate: time.Date(1973, time.March, 7, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidatorAcceptsValidMovie(t *testing.T) {
	if problems := NewValidator().Validate(validMovie()); len(problems) > 0 {
		t.Errorf("unexpected problems: %v", problems)
	}
}

func TestValidatorFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*movie.Movie)
		field  string
	}{
		{"empty title", func(m *movie.Movie) { m.Title = "" }, "title"},
		{"whitespace title", func(m *movie.Movie) { m.Title = "   " }, "title"},
		{"title too long", func(m *movie.Movie) { m.Title = strings.Repeat("x", maxTitleLength+1) }, "title"},
		{"description too long", func(m *movie.Movie) { m.Description = strings.Repeat("y", maxDescriptionLength+1) }, "description"},
		{"zero release date", func(m *movie.Movie) { m.ReleaseDate = time.Time{} }, "release_date"},
		{"release before cinema", func(m *movie.Movie) {
			m.ReleaseDate = time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC)
		}, "release_date"},
		{"release too far ahead", func(m *movie.Movie) {
			m.ReleaseDate = time.Now().UTC().AddDate(6, 0, 0)
		}, "release_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMovie()
			tt.mutate(&m)

			problems := NewValidator().Validate(m)
			if _, ok := problems[tt.field]; !ok {
				t.Errorf("expected problem on %q, got %v", tt.field, problems)
			}
		})
	}
}

func TestValidatorAggregatesAllProblems(t *testing.T) {
	m := movie.Movie{}
	problems := NewValidator().Validate(m)

	for _, field := range []string{"title", "release_date"} {
		if _, ok := problems[field]; !ok {
			t.Errorf("missing problem for %q: %v", field, problems)
		}
	}
}

func TestValidatorBoundaryLengths(t *testing.T) {
	m := validMovie()
	m.Title = strings.Repeat("a", maxTitleLength)
	m.Description = strings.Repeat("b", maxDescriptionLength)

	if problems := NewValidator().Validate(m); len(problems) > 0 {
		t.Errorf("boundary lengths should be accepted: %v", problems)
	}
}

func TestValidatorCustomRules(t *testing.T) {
	called := false
	v := NewValidator(func(m movie.Movie, problems map[string]string) {
		called = true
		problems["custom"] = "always fails"
	})

	problems := v.Validate(validMovie())
	if !called {
		t.Fatal("custom rule not invoked")
	}
	if problems["custom"] != "always fails" {
		t.Errorf("problems = %v", problems)
	}
}
