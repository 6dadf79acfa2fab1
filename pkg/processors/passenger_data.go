package processors

import (
	"context"
	"fmt"

	"github.com/fleetops/core/pkg/models"
	"github.com/fleetops/core/pkg/processor"
)

const defaultPassengerBatchSize = 500

// PassengerFetcher pulls passenger records from the upstream ops API.
type PassengerFetcher interface {
	FetchPassengers(ctx context.Context, limit int) (*models.PassengerBatch, error)
}

// PassengerDataProcessor syncs updated passenger records from the upstream
// operations API. Upstream per-record warnings are reported as partial
// failures alongside a successful run.
type PassengerDataProcessor struct {
	fetcher PassengerFetcher
}

// NewPassengerDataProcessor creates the passenger-data processor.
func NewPassengerDataProcessor(fetcher PassengerFetcher) *PassengerDataProcessor {
	return &PassengerDataProcessor{fetcher: fetcher}
}

// Process pulls one batch of passenger records.
func (p *PassengerDataProcessor) Process(ctx context.Context, config map[string]any) (processor.Result, error) {
	batchSize := intValue(config, "batch_size", defaultPassengerBatchSize)
	if batchSize <= 0 {
		return processor.Result{}, fmt.Errorf("invalid batch_size %d", batchSize)
	}

	batch, err := p.fetcher.FetchPassengers(ctx, batchSize)
	if err != nil {
		return processor.Result{}, fmt.Errorf("fetch passengers: %w", err)
	}

	return processor.Result{
		RecordsProcessed: len(batch.Records),
		Errors:           batch.Warnings,
	}, nil
}
