package pool

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config represents database connection pool settings
type Config struct {
	// MaxConns is the maximum number of connections in the pool
	MaxConns int32
	// MinConns is the minimum number of connections in the pool
	MinConns int32
	// MaxConnLifetime is the maximum lifetime of a connection
	MaxConnLifetime time.Duration
	// MaxConnIdleTime is the maximum idle time for a connection
	MaxConnIdleTime time.Duration
	// HealthCheckPeriod is the interval between health checks
	HealthCheckPeriod time.Duration
	// ConnectTimeout is the timeout for establishing new connections
	ConnectTimeout time.Duration
}

// DefaultConfig returns pool settings sized for the scheduler service. The
// only database work here is periodic retention pruning, so the pool stays
// small.
func DefaultConfig() *Config {
	return &Config{
		MaxConns:          10,
		MinConns:          2,
		MaxConnLifetime:   30 * time.Minute,
		MaxConnIdleTime:   5 * time.Minute,
		HealthCheckPeriod: 30 * time.Second,
		ConnectTimeout:    10 * time.Second,
	}
}

// New creates a new database connection pool and verifies connectivity.
func New(ctx context.Context, databaseURL string, cfg *Config) (*pgxpool.Pool, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = cfg.MaxConnLifetime
	config.MaxConnIdleTime = cfg.MaxConnIdleTime
	config.HealthCheckPeriod = cfg.HealthCheckPeriod
	config.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	// Long-running cleanup deletes should not hold the database hostage.
	config.ConnConfig.RuntimeParams = map[string]string{
		"statement_timeout":                   "300000", // 5 minutes
		"idle_in_transaction_session_timeout": "60000",  // 1 minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
