// Package server exposes the harvest engine over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aluiziolira/review-harvester/config"
	"github.com/aluiziolira/review-harvester/harvest"
	"github.com/aluiziolira/review-harvester/models"
)

// Harvester is the engine surface the HTTP layer depends on.
type Harvester interface {
	Harvest(ctx context.Context, targetURL string, maxReviews int) (*models.HarvestResult, error)
}

// Server carries the handler dependencies and the session slot semaphore.
type Server struct {
	cfg       *config.Config
	harvester Harvester
	metrics   *harvest.Metrics
	logger    *slog.Logger
	sem       chan struct{}
}

// New builds the server. metrics may be nil; the /metrics route is then
// omitted.
func New(cfg *config.Config, harvester Harvester, metrics *harvest.Metrics, logger *slog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		harvester: harvester,
		metrics:   metrics,
		logger:    logger,
		sem:       make(chan struct{}, cfg.MaxConcurrentSessions),
	}
}

// Router assembles the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(s.cfg.RateLimitPerMinute, time.Minute))
		r.Get("/api/reviews", s.handleReviews)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
