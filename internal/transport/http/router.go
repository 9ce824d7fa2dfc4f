// Package httptransport assembles the HTTP surface: shared middleware, the
// domain handlers, health and metrics endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sulfurwatch/internal/platform/metrics"
	"sulfurwatch/internal/platform/middleware"
	"sulfurwatch/pkg/platform/httputil"
)

const healthCheckTimeout = 2 * time.Second

// Routes is implemented by every domain handler.
type Routes interface {
	Register(r chi.Router)
}

// HealthCheck probes one backing dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Config carries the cross-cutting pieces of the router.
type Config struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Authenticate resolves the caller identity. Nil leaves every request anonymous.
	Authenticate func(http.Handler) http.Handler
	// MetricsHandler is served on /metrics when set.
	MetricsHandler http.Handler
	HealthChecks   []HealthCheck
}

// NewRouter wires the middleware chain and mounts handlers.
func NewRouter(cfg Config, handlers ...Routes) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(cfg.Metrics))

	r.Get("/health", healthHandler(cfg.HealthChecks))
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		if cfg.Authenticate != nil {
			r.Use(cfg.Authenticate)
		}
		for _, h := range handlers {
			h.Register(r)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				resp.Checks[c.Name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
