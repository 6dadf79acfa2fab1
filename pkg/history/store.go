// Package history keeps a bounded, in-memory log of job execution outcomes.
package history

import (
	"sync"
	"time"

	"github.com/fleetops/core/pkg/models"
)

// DefaultLimit is the per-job history cap.
const DefaultLimit = 100

// Store retains the newest-first execution history per job id, capped at a
// fixed number of entries per job. All history is process-local; a restart
// starts from empty.
type Store struct {
	mu      sync.RWMutex
	limit   int
	entries map[string][]models.ExecutionResult
}

// NewStore creates a history store with the given per-job cap. A non-positive
// limit falls back to DefaultLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		limit:   limit,
		entries: make(map[string][]models.ExecutionResult),
	}
}

// Add prepends result to the job's history, evicting the oldest entry when
// the cap is exceeded.
func (s *Store) Add(jobID string, result models.ExecutionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.entries[jobID]
	updated := make([]models.ExecutionResult, 0, len(current)+1)
	updated = append(updated, result)
	updated = append(updated, current...)
	if len(updated) > s.limit {
		updated = updated[:s.limit]
	}
	s.entries[jobID] = updated
}

// History returns a copy of the job's newest-first history.
func (s *Store) History(jobID string) []models.ExecutionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.entries[jobID]
	out := make([]models.ExecutionResult, len(current))
	copy(out, current)
	return out
}

// Purge drops all history for the job.
func (s *Store) Purge(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, jobID)
}

// Totals aggregates run counters across all jobs: completed and failed run
// counts plus the most recent execution timestamp, nil if nothing has run.
func (s *Store) Totals() (completed int, failed int, lastRun *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, results := range s.entries {
		for _, result := range results {
			if result.Success {
				completed++
			} else {
				failed++
			}
			if lastRun == nil || result.Timestamp.After(*lastRun) {
				ts := result.Timestamp
				lastRun = &ts
			}
		}
	}
	return completed, failed, lastRun
}
