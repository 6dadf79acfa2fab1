package processors

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fleetops/core/pkg/logger"
	"github.com/fleetops/core/pkg/processor"
)

const defaultRetentionDays = 90

// DBTX matches the subset of pgx connections and pools the cleanup
// processor needs, so tests can run against a fake.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// cleanupTables are the tables subject to retention pruning, in dependency
// order. Statements are built from this fixed list, never from job config.
var cleanupTables = []string{
	"trip_events",
	"vehicle_telemetry",
	"audit_log",
}

// CleanupProcessor prunes rows older than the configured retention period.
// A failing table is a partial failure; the remaining tables are still
// pruned.
type CleanupProcessor struct {
	db     DBTX
	logger *logger.Logger
}

// NewCleanupProcessor creates the record cleanup processor.
func NewCleanupProcessor(db DBTX, log *logger.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		db:     db,
		logger: log,
	}
}

// Process deletes expired rows table by table and reports the total rows
// removed.
func (p *CleanupProcessor) Process(ctx context.Context, config map[string]any) (processor.Result, error) {
	retentionDays := intValue(config, "retention_days", defaultRetentionDays)
	if retentionDays <= 0 {
		return processor.Result{}, fmt.Errorf("invalid retention_days %d", retentionDays)
	}

	result := processor.Result{}
	for _, table := range cleanupTables {
		start := time.Now()
		query := fmt.Sprintf("DELETE FROM %s WHERE created_at < now() - $1::interval", table)
		tag, err := p.db.Exec(ctx, query, fmt.Sprintf("%d days", retentionDays))

		affected := 0
		if err == nil {
			affected = int(tag.RowsAffected())
			result.RecordsProcessed += affected
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", table, err))
		}
		p.logger.LogDatabaseOperation("delete", table, affected, time.Since(start), err)
	}
	return result, nil
}
