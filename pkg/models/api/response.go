package api

import (
	"time"

	"github.com/fleetops/core/pkg/models"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Response represents a general API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Message string      `json:"message,omitempty"`
}

// CreateJobRequest is the payload for POST /api/jobs. The id is generated
// server-side; everything else mirrors the job definition.
type CreateJobRequest struct {
	Name          string         `json:"name"`
	Schedule      string         `json:"schedule"`
	Enabled       bool           `json:"enabled"`
	ProcessorName string         `json:"processor_name"`
	Config        map[string]any `json:"config,omitempty"`
}

// CreateJobResponse carries the generated job id back to the caller.
type CreateJobResponse struct {
	ID string `json:"id"`
}

// NextRunResponse reports the recomputed next fire time for a job.
type NextRunResponse struct {
	JobID   string     `json:"job_id"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

// JobHistoryResponse wraps a job's execution history.
type JobHistoryResponse struct {
	JobID   string                   `json:"job_id"`
	History []models.ExecutionResult `json:"history"`
}
