package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fleetops/core/pkg/logger"
	"github.com/fleetops/core/pkg/models"
	"github.com/fleetops/core/pkg/models/api"
	"github.com/fleetops/core/pkg/scheduler"
)

// Scheduler is the control surface the handler drives. *scheduler.Service
// satisfies it.
type Scheduler interface {
	Jobs() []models.JobDefinition
	Job(id string) (models.JobDefinition, bool)
	JobHistory(id string) []models.ExecutionResult
	EnableJob(id string) bool
	DisableJob(id string) bool
	RunJobNow(ctx context.Context, id string) (models.ExecutionResult, error)
	CreateJob(def models.JobDefinition) (string, error)
	DeleteJob(id string) bool
	NextRunTime(id string) (time.Time, bool)
	Stats() models.JobStats
}

type Handler struct {
	scheduler Scheduler
	logger    *logger.Logger
}

func NewHandler(sched Scheduler, log *logger.Logger) *Handler {
	return &Handler{
		scheduler: sched,
		logger:    log,
	}
}

// Collection handles /api/jobs: GET lists all jobs, POST creates one.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Stats handles GET /api/jobs/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    h.scheduler.Stats(),
	})
}

// Item handles /api/jobs/{id} and its sub-resources:
// history, next-run, enable, disable, run.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.Error(w, "Job id required", http.StatusBadRequest)
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.get(w, id)
	case action == "" && r.Method == http.MethodDelete:
		h.delete(w, id)
	case action == "history" && r.Method == http.MethodGet:
		h.history(w, id)
	case action == "next-run" && r.Method == http.MethodGet:
		h.nextRun(w, id)
	case action == "enable" && r.Method == http.MethodPost:
		h.setEnabled(w, id, true)
	case action == "disable" && r.Method == http.MethodPost:
		h.setEnabled(w, id, false)
	case action == "run" && r.Method == http.MethodPost:
		h.run(w, r, id)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) list(w http.ResponseWriter) {
	jobs := h.scheduler.Jobs()
	h.writeJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    jobs,
		Meta: map[string]any{
			"total": len(jobs),
		},
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.scheduler.CreateJob(models.JobDefinition{
		Name:          req.Name,
		Schedule:      req.Schedule,
		Enabled:       req.Enabled,
		ProcessorName: req.ProcessorName,
		Config:        req.Config,
	})
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, api.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusCreated, api.Response{
		Success: true,
		Data:    api.CreateJobResponse{ID: id},
	})
}

func (h *Handler) get(w http.ResponseWriter, id string) {
	job, ok := h.scheduler.Job(id)
	if !ok {
		h.notFound(w, id)
		return
	}
	h.writeJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    job,
	})
}

func (h *Handler) delete(w http.ResponseWriter, id string) {
	if _, ok := h.scheduler.Job(id); !ok {
		h.notFound(w, id)
		return
	}
	if !h.scheduler.DeleteJob(id) {
		h.writeJSON(w, http.StatusForbidden, api.Response{
			Success: false,
			Message: "protected jobs cannot be deleted",
		})
		return
	}
	h.writeJSON(w, http.StatusOK, api.Response{Success: true})
}

func (h *Handler) history(w http.ResponseWriter, id string) {
	if _, ok := h.scheduler.Job(id); !ok {
		h.notFound(w, id)
		return
	}
	h.writeJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data: api.JobHistoryResponse{
			JobID:   id,
			History: h.scheduler.JobHistory(id),
		},
	})
}

func (h *Handler) nextRun(w http.ResponseWriter, id string) {
	if _, ok := h.scheduler.Job(id); !ok {
		h.notFound(w, id)
		return
	}

	response := api.NextRunResponse{JobID: id}
	if next, ok := h.scheduler.NextRunTime(id); ok {
		response.NextRun = &next
	}
	h.writeJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    response,
	})
}

func (h *Handler) setEnabled(w http.ResponseWriter, id string, enabled bool) {
	ok := false
	if enabled {
		ok = h.scheduler.EnableJob(id)
	} else {
		ok = h.scheduler.DisableJob(id)
	}
	if !ok {
		h.notFound(w, id)
		return
	}
	h.writeJSON(w, http.StatusOK, api.Response{Success: true})
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, id string) {
	result, err := h.scheduler.RunJobNow(r.Context(), id)
	if err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			h.notFound(w, id)
			return
		}
		h.logger.Error().Err(err).Str("job_id", id).Msg("Manual job run failed")
		http.Error(w, "Failed to run job", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    result,
	})
}

func (h *Handler) notFound(w http.ResponseWriter, id string) {
	h.writeJSON(w, http.StatusNotFound, api.Response{
		Success: false,
		Message: "job " + id + " not found",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
