package scheduler

import (
	"context"
	"fmt"

	"github.com/fleetops/core/pkg/history"
	"github.com/fleetops/core/pkg/logger"
	"github.com/fleetops/core/pkg/models"
	"github.com/fleetops/core/pkg/processor"
)

// Executor runs a single job's processor and records the outcome. A processor
// fault of any kind becomes a failed ExecutionResult; it never propagates back
// into the engine, so one broken job cannot take the others down.
type Executor struct {
	registry *processor.Registry
	history  *history.Store
	logger   *logger.Logger
	clock    Clock
}

// NewExecutor creates an executor writing outcomes to the given history store.
func NewExecutor(registry *processor.Registry, store *history.Store, log *logger.Logger, clock Clock) *Executor {
	return &Executor{
		registry: registry,
		history:  store,
		logger:   log,
		clock:    clock,
	}
}

// Execute runs the job's processor, measures duration and appends exactly one
// ExecutionResult to the job's history, success or failure.
func (e *Executor) Execute(ctx context.Context, job models.JobDefinition) models.ExecutionResult {
	log := e.logger.WithJob(job.ID, job.Name)

	proc, ok := e.registry.Get(job.ProcessorName)
	if !ok {
		// Unknown processor names fall back to a no-op processor instead of
		// failing the run. That can mask a misconfigured job definition, so
		// the fallback is logged at warn level on every occurrence.
		log.LogProcessorFallback(job.ID, job.ProcessorName)
		proc = processor.Default()
	}

	start := e.clock.Now()
	result, err := e.runProcessor(ctx, proc, job.Config)
	finished := e.clock.Now()
	duration := finished.Sub(start)

	outcome := models.ExecutionResult{
		DurationMs: duration.Milliseconds(),
		Timestamp:  finished,
	}

	if err != nil {
		outcome.Success = false
		outcome.RecordsProcessed = 0
		outcome.Errors = []string{err.Error()}
		log.Error().
			Err(err).
			Str("action", "job_failed").
			Dur("duration", duration).
			Msg("Job execution failed")
	} else {
		// A populated errors list with a normal return is a partial failure:
		// the run itself still counts as successful.
		outcome.Success = true
		outcome.RecordsProcessed = result.RecordsProcessed
		outcome.Errors = result.Errors
		log.LogJobComplete(job.ID, duration, result.RecordsProcessed, len(result.Errors))
	}

	e.history.Add(job.ID, outcome)
	return outcome
}

// runProcessor invokes the processor, converting panics into errors so a
// misbehaving processor cannot unwind the scheduler.
func (e *Executor) runProcessor(ctx context.Context, proc processor.Processor, config map[string]any) (result processor.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = processor.Result{}
			err = fmt.Errorf("processor panic: %v", r)
		}
	}()
	return proc.Process(ctx, config)
}
