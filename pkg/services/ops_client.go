package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/fleetops/core/internal/config"
	"github.com/fleetops/core/pkg/logger"
	"github.com/fleetops/core/pkg/models"
)

// OpsClient talks to the upstream fleet operations API. All calls go through
// a circuit breaker so a flapping upstream fails fast instead of tying up job
// executions for the full HTTP timeout on every fire.
type OpsClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
}

// NewOpsClient creates a client for the configured upstream ops API.
func NewOpsClient(cfg *config.Config, log *logger.Logger) *OpsClient {
	maxFailures := cfg.OpsAPI.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "ops-api",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("action", "breaker_state_change").
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})

	return &OpsClient{
		baseURL: cfg.OpsAPI.BaseURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.OpsAPI.TimeoutSeconds) * time.Second,
		},
		breaker: breaker,
		logger:  log,
	}
}

// FetchPassengers pulls up to limit updated passenger records.
func (c *OpsClient) FetchPassengers(ctx context.Context, limit int) (*models.PassengerBatch, error) {
	url := fmt.Sprintf("%s/api/passengers?limit=%d", c.baseURL, limit)

	var batch models.PassengerBatch
	if err := c.getJSON(ctx, url, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// FetchInvoices pulls vendor invoices issued within the trailing period.
func (c *OpsClient) FetchInvoices(ctx context.Context, periodDays int) (*models.InvoiceBatch, error) {
	url := fmt.Sprintf("%s/api/invoices?period_days=%d", c.baseURL, periodDays)

	var batch models.InvoiceBatch
	if err := c.getJSON(ctx, url, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (c *OpsClient) getJSON(ctx context.Context, url string, out any) error {
	start := time.Now()

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to make request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return nil, nil
	})

	statusCode := http.StatusOK
	if err != nil {
		statusCode = 0
	}
	c.logger.LogAPICall(http.MethodGet, url, statusCode, time.Since(start), err)

	return err
}
