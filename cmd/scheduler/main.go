package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetops/core/internal/config"
	"github.com/fleetops/core/pkg/database/pool"
	"github.com/fleetops/core/pkg/history"
	"github.com/fleetops/core/pkg/logger"
	"github.com/fleetops/core/pkg/processor"
	"github.com/fleetops/core/pkg/processors"
	"github.com/fleetops/core/pkg/scheduler"
	"github.com/fleetops/core/pkg/server"
	"github.com/fleetops/core/pkg/services"
)

func main() {
	// Parse command line flags
	var (
		jobID = flag.String("job", "", "Run a specific seeded job once (e.g. daily-passenger-sync)")
		once  = flag.Bool("once", false, "Run job once and exit")
	)
	flag.Parse()

	logger.SetupLogger()
	log := logger.New("scheduler")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Wire the processor registry. The scheduler core only ever sees the
	// Processor contract, never the concrete processors.
	registry := processor.NewRegistry()
	opsClient := services.NewOpsClient(cfg, log)

	mustRegister(log, registry, "passenger-data", processors.NewPassengerDataProcessor(opsClient))
	mustRegister(log, registry, "financial", processors.NewFinancialProcessor(opsClient))
	mustRegister(log, registry, "maintenance", processors.NewMaintenanceProcessor(
		processors.SystemCheckerFunc(func(ctx context.Context, system string) error {
			// Real probes live on the vehicles; the service only tracks
			// which systems are due for a check.
			return nil
		}),
	))

	if cfg.Database.Enabled {
		dbPool, err := pool.New(context.Background(), cfg.DatabaseURL(), nil)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()
		mustRegister(log, registry, "cleanup", processors.NewCleanupProcessor(dbPool, log))
	} else {
		log.Warn().
			Str("action", "cleanup_disabled").
			Msg("Database disabled; cleanup jobs will fall back to the default processor")
	}

	store := history.NewStore(cfg.Scheduler.HistoryLimit)
	svc := scheduler.NewService(registry, store, log)
	if err := svc.Seed(scheduler.SeedJobs()); err != nil {
		log.Fatalf("Failed to seed jobs: %v", err)
	}

	// Handle single job execution
	if *once && *jobID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		result, err := svc.RunJobNow(ctx, *jobID)
		if err != nil {
			log.Fatalf("Failed to run job %s: %v", *jobID, err)
		}
		log.Info().
			Str("job_id", *jobID).
			Bool("success", result.Success).
			Int("records_processed", result.RecordsProcessed).
			Int64("duration_ms", result.DurationMs).
			Strs("errors", result.Errors).
			Msg("Job run finished")
		if !result.Success {
			os.Exit(1)
		}
		return
	}

	svc.Start()

	srv := server.New(cfg, svc, log)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Control API server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down scheduler service")
	svc.Stop()
	log.Info().Msg("Scheduler service stopped")
}

func mustRegister(log *logger.Logger, registry *processor.Registry, name string, p processor.Processor) {
	if err := registry.Register(name, p); err != nil {
		log.Fatalf("Failed to register processor %s: %v", name, err)
	}
}
