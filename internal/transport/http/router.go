package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/config"
	"salesdash/internal/middleware"
	"salesdash/internal/services"
)

// NewRouter assembles the dashboard API with the full middleware chain.
func NewRouter(analysis AnalysisServiceInterface, health *services.HealthService, cfg config.ServerConfig, logger *slog.Logger) chi.Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30*time.Second, logger))

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, logger)
		r.Use(limiter.Handler)
	}

	dashboard := NewDashboardHandler(analysis, logger)
	healthHandler := NewHealthHandler(health, logger)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthHandler.HealthCheck)
		api.Mount("/", dashboard.Routes())
	})

	return r
}

// NewServer builds an http.Server bound to the configured port.
func NewServer(handler http.Handler, cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
