package scheduler

import "github.com/fleetops/core/pkg/models"

// SeedJobs returns the built-in job set created at every process start.
// Nothing is persisted, so these (and only these) come back after a restart;
// their ids carry reserved prefixes and are protected from deletion.
func SeedJobs() []models.JobDefinition {
	return []models.JobDefinition{
		{
			ID:            "daily-passenger-sync",
			Name:          "Passenger Data Sync",
			Schedule:      "0 2 * * *",
			Enabled:       true,
			ProcessorName: "passenger-data",
			Config: map[string]any{
				"batch_size": 500,
			},
		},
		{
			ID:            "hourly-maintenance-check",
			Name:          "Maintenance Check",
			Schedule:      "0 * * * *",
			Enabled:       true,
			ProcessorName: "maintenance",
			Config: map[string]any{
				"systems": []any{"engine", "brakes", "doors", "hvac"},
			},
		},
		{
			ID:            "weekly-financial-report",
			Name:          "Financial Report Rollup",
			Schedule:      "30 5 * * 1",
			Enabled:       true,
			ProcessorName: "financial",
			Config: map[string]any{
				"period_days": 7,
			},
		},
		{
			ID:            "daily-record-cleanup",
			Name:          "Record Cleanup",
			Schedule:      "30 3 * * *",
			Enabled:       true,
			ProcessorName: "cleanup",
			Config: map[string]any{
				"retention_days": 90,
			},
		},
		{
			ID:            "monthly-vendor-audit",
			Name:          "Vendor Audit",
			Schedule:      "0 6 1 * *",
			Enabled:       false,
			ProcessorName: "financial",
			Config: map[string]any{
				"period_days": 30,
			},
		},
	}
}
