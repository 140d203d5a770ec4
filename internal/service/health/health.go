// Package health aggregates named readiness checks for the health endpoints.
package health

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Checker reports whether one dependency is usable.
type Checker func(ctx context.Context) error

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusUnknown   = "unknown"
)

// CheckResult is the outcome of a single named check.
type CheckResult struct {
	Tag        string `json:"tag"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Report is the aggregate health document.
type Report struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Service runs registered checks with a bounded per-check timeout.
type Service struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	timeout  time.Duration
}

// NewService creates a health service with a 2 second per-check timeout.
func NewService() *Service {
	return &Service{
		checkers: make(map[string]Checker),
		timeout:  2 * time.Second,
	}
}

// Register adds a named check. Registering an existing tag replaces it.
func (s *Service) Register(tag string, check Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[tag] = check
}

// Check runs every registered check and aggregates the result.
func (s *Service) Check(ctx context.Context) Report {
	s.mu.RLock()
	tags := make([]string, 0, len(s.checkers))
	for tag := range s.checkers {
		tags = append(tags, tag)
	}
	s.mu.RUnlock()
	sort.Strings(tags)

	report := Report{Status: StatusHealthy, Timestamp: time.Now().UTC()}
	for _, tag := range tags {
		result := s.runCheck(ctx, tag)
		if result.Status != StatusHealthy {
			report.Status = StatusUnhealthy
		}
		report.Checks = append(report.Checks, result)
	}
	return report
}

// CheckTag runs a single named check. Unknown tags report StatusUnknown.
func (s *Service) CheckTag(ctx context.Context, tag string) CheckResult {
	s.mu.RLock()
	_, ok := s.checkers[tag]
	s.mu.RUnlock()
	if !ok {
		return CheckResult{Tag: tag, Status: StatusUnknown, Error: "no such check"}
	}
	return s.runCheck(ctx, tag)
}

func (s *Service) runCheck(ctx context.Context, tag string) CheckResult {
	s.mu.RLock()
	check := s.checkers[tag]
	s.mu.RUnlock()

	checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := check(checkCtx)
	result := CheckResult{
		Tag:        tag,
		Status:     StatusHealthy,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
	}
	return result
}
