package models

import (
	"strings"
	"time"
)

// Reserved id prefixes used by the seeded built-in jobs. Jobs carrying one of
// these prefixes at seed time are protected from deletion.
var ProtectedPrefixes = []string{"daily-", "weekly-", "monthly-", "hourly-"}

// JobDefinition describes a named recurring job bound to a schedule and a
// processor. Config is opaque to the scheduler and handed to the processor
// verbatim on every run.
type JobDefinition struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Schedule      string         `json:"schedule"`
	Enabled       bool           `json:"enabled"`
	ProcessorName string         `json:"processor_name"`
	Config        map[string]any `json:"config,omitempty"`
}

// ExecutionResult records the outcome of one job run. It is immutable once
// created and retained in the bounded per-job history.
type ExecutionResult struct {
	Success          bool      `json:"success"`
	RecordsProcessed int       `json:"records_processed"`
	Errors           []string  `json:"errors,omitempty"`
	DurationMs       int64     `json:"duration_ms"`
	Timestamp        time.Time `json:"timestamp"`
}

// JobStats aggregates registry and history counters across all jobs.
type JobStats struct {
	TotalJobs     int        `json:"total_jobs"`
	ActiveJobs    int        `json:"active_jobs"`
	CompletedRuns int        `json:"completed_runs"`
	FailedRuns    int        `json:"failed_runs"`
	LastRunTime   *time.Time `json:"last_run_time,omitempty"`
}

// HasProtectedPrefix reports whether the id carries one of the reserved
// seeded-job prefixes.
func HasProtectedPrefix(id string) bool {
	for _, prefix := range ProtectedPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}
