// Package http assembles the gateway's HTTP surface: route tree, server
// lifecycle and the middleware chain.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/chemgpt/gateway/internal/infrastructure/monitoring/logging"
	"github.com/chemgpt/gateway/internal/interfaces/http/handlers"
	"github.com/chemgpt/gateway/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies for the
// complete route tree.
type RouterConfig struct {
	ChatHandler   *handlers.ChatHandler
	ProxyHandler  *handlers.ProxyHandler
	HealthHandler *handlers.HealthHandler

	CORS         *middleware.CORSConfig
	Logging      *middleware.LoggingConfig
	HTTPObserver middleware.HTTPObserver

	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler

	Logger logging.Logger
}

// NewRouter constructs the route tree with the global middleware chain:
// request ID, real IP, panic recovery, CORS, logging and metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.Logger != nil {
		loggingCfg := middleware.DefaultLoggingConfig()
		if cfg.Logging != nil {
			loggingCfg = *cfg.Logging
		}
		r.Use(middleware.RequestLogging(cfg.Logger, loggingCfg))
	}
	if cfg.HTTPObserver != nil {
		r.Use(middleware.Metrics(cfg.HTTPObserver))
	}

	if cfg.HealthHandler != nil {
		r.Get("/", cfg.HealthHandler.Status)
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.ChatHandler != nil {
		r.Post("/chat", cfg.ChatHandler.Chat)
	}

	if cfg.ProxyHandler != nil {
		r.Post("/extract", cfg.ProxyHandler.Extract)
		r.Post("/spectro", cfg.ProxyHandler.Spectro)
		r.Post("/retro", cfg.ProxyHandler.Retro)
	}

	return r
}
