package processors

import (
	"context"
	"fmt"

	"github.com/fleetops/core/pkg/processor"
)

// defaultSystems are checked when a job config names none.
var defaultSystems = []string{"engine", "brakes", "doors", "hvac"}

// SystemChecker probes one named vehicle system and reports whether it is
// healthy. Implementations live at the wiring layer; the default checker
// accepts everything it knows about.
type SystemChecker interface {
	Check(ctx context.Context, system string) error
}

// SystemCheckerFunc adapts a function to the SystemChecker interface.
type SystemCheckerFunc func(ctx context.Context, system string) error

func (f SystemCheckerFunc) Check(ctx context.Context, system string) error {
	return f(ctx, system)
}

// MaintenanceProcessor runs the configured system checks. A failing check is
// a partial failure: the run succeeds with the failure reported in the
// errors list, so one degraded system does not hide the state of the others.
type MaintenanceProcessor struct {
	checker SystemChecker
}

// NewMaintenanceProcessor creates the maintenance processor.
func NewMaintenanceProcessor(checker SystemChecker) *MaintenanceProcessor {
	return &MaintenanceProcessor{checker: checker}
}

// Process checks every configured system and reports one record per check.
func (p *MaintenanceProcessor) Process(ctx context.Context, config map[string]any) (processor.Result, error) {
	systems := stringsValue(config, "systems")
	if len(systems) == 0 {
		systems = defaultSystems
	}

	result := processor.Result{}
	for _, system := range systems {
		if system == "" {
			result.Errors = append(result.Errors, "empty system name in config")
			continue
		}
		if err := p.checker.Check(ctx, system); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", system, err))
		}
		result.RecordsProcessed++
	}
	return result, nil
}
