package movies

import (
	"fmt"
	"strings"
	"time"

	"github.com/filmlane/movie-service/internal/domain/movie"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

// Cinema predates nothing before this year; it bounds obviously bogus dates.
var earliestRelease = time.Date(1888, time.January, 1, 0, 0, 0, 0, time.UTC)

// Rule inspects a movie and records field problems.
type Rule func(m movie.Movie, problems map[string]string)

// Validator runs a set of rules against a movie and aggregates every field
// problem rather than stopping at the first.
type Validator struct {
	rules []Rule
}

// NewValidator builds a validator from rules. With no arguments the default
// rule set is used.
func NewValidator(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = []Rule{titleRule, descriptionRule, releaseDateRule}
	}
	return &Validator{rules: rules}
}

// Validate returns a map of field name to problem; empty when valid.
func (v *Validator) Validate(m movie.Movie) map[string]string {
	problems := make(map[string]string)
	for _, rule := range v.rules {
		rule(m, problems)
	}
	return problems
}

func titleRule(m movie.Movie, problems map[string]string) {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		problems["title"] = "title is required"
		return
	}
	if len(title) > maxTitleLength {
		problems["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLength)
	}
}

func descriptionRule(m movie.Movie, problems map[string]string) {
	if len(m.Description) > maxDescriptionLength {
		problems["description"] = fmt.Sprintf("description must be at most %d characters", maxDescriptionLength)
	}
}

func releaseDateRule(m movie.Movie, problems map[string]string) {
	if m.ReleaseDate.IsZero() {
		problems["release_date"] = "release_date is required"
		return
	}
	if m.ReleaseDate.Before(earliestRelease) {
		problems["release_date"] = "release_date is implausibly early"
		return
	}
	if m.ReleaseDate.After(time.Now().UTC().AddDate(5, 0, 0)) {
		problems["release_date"] = "release_date is too far in the future"
	}
}
