package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full service configuration, loaded from environment
// variables (optionally seeded from a .env file in development).
type Config struct {
	Server    ServerConfig    `envPrefix:""`
	Database  DatabaseConfig  `envPrefix:"DB_"`
	OpsAPI    OpsAPIConfig    `envPrefix:"OPS_API_"`
	Scheduler SchedulerConfig `envPrefix:"SCHEDULER_"`
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"localhost"`
	Port string `env:"PORT" envDefault:"8080"`
}

type DatabaseConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     string `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"fleetops"`
	Password string `env:"PASSWORD" envDefault:"fleetops"`
	DBName   string `env:"NAME"     envDefault:"fleetops_core"`
	SSLMode  string `env:"SSLMODE"  envDefault:"disable"`

	// Enabled gates the database connection entirely. Processors that need
	// the database are only registered when this is true.
	Enabled bool `env:"ENABLED" envDefault:"false"`
}

// OpsAPIConfig points at the upstream operations API consumed by the
// passenger-data processor.
type OpsAPIConfig struct {
	BaseURL        string `env:"URL"             envDefault:"http://localhost:9090"`
	TimeoutSeconds int    `env:"TIMEOUT"         envDefault:"30"`
	MaxFailures    uint32 `env:"MAX_FAILURES"    envDefault:"5"`
}

type SchedulerConfig struct {
	// HistoryLimit caps the per-job execution history.
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"100"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error; any other .env read failure is.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DatabaseURL returns the Postgres connection string. An explicit
// DATABASE_URL environment variable wins over the individual components.
func (c *Config) DatabaseURL() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}

	return "postgres://" + c.Database.User + ":" + c.Database.Password +
		"@" + c.Database.Host + ":" + c.Database.Port +
		"/" + c.Database.DBName + "?sslmode=" + c.Database.SSLMode
}
