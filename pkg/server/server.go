package server

import (
	"fmt"
	"net/http"

	"github.com/fleetops/core/internal/config"
	"github.com/fleetops/core/pkg/handlers/health"
	"github.com/fleetops/core/pkg/handlers/jobs"
	"github.com/fleetops/core/pkg/logger"
	"github.com/fleetops/core/pkg/middleware"
	"github.com/fleetops/core/pkg/scheduler"
)

// Server exposes the scheduler control API over HTTP.
type Server struct {
	router   *http.ServeMux
	port     string
	logger   *logger.Logger
	handlers struct {
		health *health.Handler
		jobs   *jobs.Handler
	}
}

// New creates a new server instance wired to the scheduler service.
func New(cfg *config.Config, sched *scheduler.Service, log *logger.Logger) *Server {
	server := &Server{
		router: http.NewServeMux(),
		port:   cfg.Server.Port,
		logger: log,
	}

	server.handlers.health = health.NewHandler(log)
	server.handlers.jobs = jobs.NewHandler(sched, log)

	server.setupRoutes()
	return server
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.HandleFunc("/health", middleware.CORS(s.handlers.health.HealthCheck))

	// Simple root endpoint
	s.router.HandleFunc("/", middleware.CORS(func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintf(w, "Fleet Ops Scheduler Service - OK"); err != nil {
			http.Error(w, "Failed to write response", http.StatusInternalServerError)
		}
	}))

	// Job control endpoints. The stats route must be registered explicitly
	// so it is not swallowed by the {id} sub-tree.
	s.router.HandleFunc("/api/jobs", middleware.CORS(s.handlers.jobs.Collection))
	s.router.HandleFunc("/api/jobs/stats", middleware.CORS(s.handlers.jobs.Stats))
	s.router.HandleFunc("/api/jobs/", middleware.CORS(s.handlers.jobs.Item))
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().
		Str("action", "server_start").
		Str("port", s.port).
		Msg("Starting scheduler control API")

	if err := http.ListenAndServe(":"+s.port, s.router); err != nil {
		return fmt.Errorf("server failed to start on port %s: %w", s.port, err)
	}

	return nil
}
