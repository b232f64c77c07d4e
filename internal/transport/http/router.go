package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lossdev/internal/config"
	"lossdev/internal/middleware"
)

// NewRouter assembles the API router with the standard middleware stack.
func NewRouter(cfg *config.Config, logger *slog.Logger, triangleHandler *TriangleHandler, healthHandler *HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.Route("/api", func(r chi.Router) {
		triangleHandler.RegisterRoutes(r)
		healthHandler.RegisterRoutes(r)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
