package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig — зависимости корневого роутера
type RouterConfig struct {
	APIPrefix      string
	RequestTimeout time.Duration
	Exercises      *ExerciseHandler
	Health         ports.HealthChecker
	Gatherer       prometheus.Gatherer
	Logger         *slog.Logger
}

// NewRouter собирает chi-роутер: API под префиксом, /healthz и /metrics
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(Metrics)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Mount(cfg.APIPrefix, cfg.Exercises.Routes())
	r.Get("/healthz", Health(cfg.Health, cfg.Logger))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}
