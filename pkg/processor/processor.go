package processor

import "context"

// Result is what a processor reports back after one run. A populated Errors
// slice alongside a normal return means a partial failure: the run as a whole
// still counts as successful.
type Result struct {
	RecordsProcessed int      `json:"records_processed"`
	Errors           []string `json:"errors,omitempty"`
}

// Processor is the single contract the scheduler consumes. The scheduler has
// no knowledge of what a processor computes; it only invokes Process with the
// job's opaque config and records the outcome.
type Processor interface {
	Process(ctx context.Context, config map[string]any) (Result, error)
}

// Func adapts a plain function to the Processor interface.
type Func func(ctx context.Context, config map[string]any) (Result, error)

func (f Func) Process(ctx context.Context, config map[string]any) (Result, error) {
	return f(ctx, config)
}

// Default returns the no-op processor used when a job names a processor that
// was never registered. Callers are expected to log this fallback loudly.
func Default() Processor {
	return Func(func(ctx context.Context, config map[string]any) (Result, error) {
		return Result{}, nil
	})
}
