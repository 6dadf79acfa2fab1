// Package scheduler owns the recurring-job engine: job definitions, one
// self-rescheduling timer per enabled job, failure-isolated execution and the
// control operations consumed by the rest of the application.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/core/pkg/history"
	"github.com/fleetops/core/pkg/logger"
	"github.com/fleetops/core/pkg/models"
	"github.com/fleetops/core/pkg/processor"
	"github.com/fleetops/core/pkg/schedule"
	"github.com/fleetops/core/pkg/utils"
)

// ErrJobNotFound is returned when an operation references a job id absent
// from the registry. It is surfaced to the caller and never recorded to
// history.
var ErrJobNotFound = errors.New("job not found")

// Service is the scheduler engine and job registry. It is constructed once
// per process and injected with its collaborators; there is no package-level
// instance.
type Service struct {
	mu        sync.Mutex
	log       *logger.Logger
	clock     Clock
	executor  *Executor
	history   *history.Store
	jobs      map[string]*models.JobDefinition
	schedules map[string]*schedule.Expression
	timers    map[string]Timer
	inflight  map[string]int
	protected map[string]bool
	started   bool
	wg        sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the system clock, primarily for deterministic tests.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService creates a scheduler service recording outcomes to store and
// resolving processors through registry.
func NewService(registry *processor.Registry, store *history.Store, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log,
		clock:     NewClock(),
		history:   store,
		jobs:      make(map[string]*models.JobDefinition),
		schedules: make(map[string]*schedule.Expression),
		timers:    make(map[string]Timer),
		inflight:  make(map[string]int),
		protected: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.executor = NewExecutor(registry, store, log, s.clock)
	return s
}

// Seed registers built-in job definitions. Seeded ids carrying a reserved
// prefix join the protected set and can never be deleted through the control
// API, only enabled or disabled. Seed must be called before Start.
func (s *Service) Seed(defs []models.JobDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("seed job %q has no id", def.Name)
		}
		if _, exists := s.jobs[def.ID]; exists {
			return fmt.Errorf("duplicate seed job id %s", def.ID)
		}
		expr, err := schedule.Parse(def.Schedule)
		if err != nil {
			return fmt.Errorf("seed job %s: %w", def.ID, err)
		}

		job := def
		s.jobs[def.ID] = &job
		s.schedules[def.ID] = expr
		if models.HasProtectedPrefix(def.ID) {
			s.protected[def.ID] = true
		}

		s.log.Info().
			Str("action", "seed_job").
			Str("job_id", def.ID).
			Str("schedule", def.Schedule).
			Bool("enabled", def.Enabled).
			Bool("protected", s.protected[def.ID]).
			Msg("Seeded job definition")
	}
	return nil
}

// Start arms a timer for every enabled job.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	armed := 0
	for id, job := range s.jobs {
		if job.Enabled {
			s.armLocked(id)
			armed++
		}
	}

	s.log.Info().
		Str("action", "start").
		Int("job_count", len(s.jobs)).
		Int("armed", armed).
		Msg("Scheduler started")
}

// Stop cancels all pending timers and waits for in-flight executions to
// finish. Definitions and history remain readable afterwards.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info().
		Str("action", "stopped").
		Msg("Scheduler stopped")
}

// CreateJob validates def, assigns a fresh unique id and stores the
// definition. Enabled jobs are armed immediately once the service is running.
// The returned id is derived from the job name plus a random suffix.
func (s *Service) CreateJob(def models.JobDefinition) (string, error) {
	if def.Name == "" {
		return "", fmt.Errorf("job name is required")
	}
	if def.ProcessorName == "" {
		return "", fmt.Errorf("processor name is required")
	}
	expr, err := schedule.Parse(def.Schedule)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := utils.GenerateJobID(def.Name)
	for s.jobs[id] != nil {
		id = utils.GenerateJobID(def.Name)
	}
	def.ID = id

	job := def
	s.jobs[id] = &job
	s.schedules[id] = expr
	if job.Enabled && s.started {
		s.armLocked(id)
	}

	s.log.Info().
		Str("action", "create_job").
		Str("job_id", id).
		Str("schedule", def.Schedule).
		Str("processor", def.ProcessorName).
		Bool("enabled", def.Enabled).
		Msg("Job created")

	return id, nil
}

// DeleteJob removes the job and purges its history. Protected seeded jobs and
// unknown ids are left untouched and reported as false.
func (s *Service) DeleteJob(id string) bool {
	s.mu.Lock()

	if s.protected[id] {
		s.mu.Unlock()
		s.log.Warn().
			Str("action", "delete_rejected").
			Str("job_id", id).
			Msg("Refusing to delete protected job")
		return false
	}
	if _, ok := s.jobs[id]; !ok {
		s.mu.Unlock()
		return false
	}

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	delete(s.jobs, id)
	delete(s.schedules, id)
	s.mu.Unlock()

	s.history.Purge(id)
	s.log.Info().
		Str("action", "delete_job").
		Str("job_id", id).
		Msg("Job deleted")
	return true
}

// EnableJob marks the job enabled and arms its next occurrence. It reports
// false for unknown ids.
func (s *Service) EnableJob(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return false
	}
	job.Enabled = true
	if s.started {
		s.armLocked(id)
	}

	s.log.Info().
		Str("action", "enable_job").
		Str("job_id", id).
		Msg("Job enabled")
	return true
}

// DisableJob marks the job disabled and cancels its pending timer. An
// execution already in flight runs to completion and still records its
// result. Reports false for unknown ids.
func (s *Service) DisableJob(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return false
	}
	job.Enabled = false
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}

	s.log.Info().
		Str("action", "disable_job").
		Str("job_id", id).
		Msg("Job disabled")
	return true
}

// RunJobNow executes the job immediately, bypassing the schedule. It does not
// touch the job's armed timer. The execution records to history exactly like
// a scheduled run.
func (s *Service) RunJobNow(ctx context.Context, id string) (models.ExecutionResult, error) {
	s.mu.Lock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return models.ExecutionResult{}, fmt.Errorf("run job %s: %w", id, ErrJobNotFound)
	}
	def := *job
	s.inflight[id]++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inflight[id]--
		s.mu.Unlock()
	}()

	requestID := uuid.New().String()
	runLog := s.log.WithRequestID(requestID).WithJob(def.ID, def.Name)
	runLog.Info().
		Str("action", "run_now").
		Msg("Manual job execution requested")

	return s.executor.Execute(runLog.ToContext(ctx), def), nil
}

// NextRunTime recomputes the job's next fire time for inspection without
// mutating any scheduling state. The second return is false when the job is
// unknown or disabled.
func (s *Service) NextRunTime(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || !job.Enabled {
		return time.Time{}, false
	}
	return s.schedules[id].Next(s.clock.Now()), true
}

// Job returns the definition for id.
func (s *Service) Job(id string) (models.JobDefinition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return models.JobDefinition{}, false
	}
	return *job, true
}

// Jobs returns all job definitions sorted by id.
func (s *Service) Jobs() []models.JobDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.JobDefinition, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, *job)
	}
	sortJobs(out)
	return out
}

// JobHistory returns the job's newest-first execution history.
func (s *Service) JobHistory(id string) []models.ExecutionResult {
	return s.history.History(id)
}

// Stats aggregates registry and history counters across all jobs.
func (s *Service) Stats() models.JobStats {
	s.mu.Lock()
	total := len(s.jobs)
	active := 0
	for _, job := range s.jobs {
		if job.Enabled {
			active++
		}
	}
	s.mu.Unlock()

	completed, failed, lastRun := s.history.Totals()
	return models.JobStats{
		TotalJobs:     total,
		ActiveJobs:    active,
		CompletedRuns: completed,
		FailedRuns:    failed,
		LastRunTime:   lastRun,
	}
}

func sortJobs(jobs []models.JobDefinition) {
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].ID < jobs[j].ID
	})
}

// armLocked computes the job's next fire time and arms a one-shot timer for
// it, replacing any timer already pending. Call with s.mu held and only after
// Start.
func (s *Service) armLocked(id string) {
	job := s.jobs[id]
	expr := s.schedules[id]
	if job == nil || expr == nil || !job.Enabled || !s.started {
		return
	}

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}

	now := s.clock.Now()
	next := expr.Next(now)
	s.timers[id] = s.clock.AfterFunc(next.Sub(now), func() { s.fire(id) })

	s.log.Debug().
		Str("action", "job_armed").
		Str("job_id", id).
		Time("next_run", next).
		Msg("Job timer armed")
}

// fire handles one timer expiry: run the job unless a previous occurrence is
// still in flight, then arm the following occurrence. The recurring behavior
// is this self-perpetuating chain; there is no periodic ticker.
func (s *Service) fire(id string) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	job, ok := s.jobs[id]
	if !ok || !job.Enabled {
		delete(s.timers, id)
		s.mu.Unlock()
		return
	}

	if s.inflight[id] > 0 {
		// Previous occurrence still running: skip this fire but keep the
		// chain alive. Overlapping occurrences are never queued.
		s.log.Warn().
			Str("action", "overlap_skipped").
			Str("job_id", id).
			Msg("Previous execution still in flight, skipping this occurrence")
		s.armLocked(id)
		s.mu.Unlock()
		return
	}

	s.inflight[id]++
	def := *job
	s.wg.Add(1)
	s.mu.Unlock()

	func() {
		defer s.wg.Done()
		requestID := uuid.New().String()
		runLog := s.log.WithRequestID(requestID).WithJob(def.ID, def.Name)
		runLog.LogJobStart(def.ID, def.Schedule)
		s.executor.Execute(runLog.ToContext(context.Background()), def)
	}()

	s.mu.Lock()
	s.inflight[id]--
	if current, ok := s.jobs[id]; ok && current.Enabled {
		s.armLocked(id)
	} else {
		delete(s.timers, id)
	}
	s.mu.Unlock()
}
