// Package httpapi assembles the public HTTP surface: the shared middleware
// chain, operational endpoints and every registry's routes.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"landregistry/internal/platform/metrics"
	"landregistry/pkg/platform/httputil"
	"landregistry/pkg/platform/middleware/auth"
	"landregistry/pkg/platform/middleware/request"
	"landregistry/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by each registry's handler.
type Registrar interface {
	Register(r chi.Router)
}

type HealthCheck func(ctx context.Context) error

type Options struct {
	Logger    *slog.Logger
	Validator auth.JWTValidator
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Health    []HealthCheck
	// RateLimit wraps registry routes after authentication. Nil disables it.
	RateLimit func(http.Handler) http.Handler
}

func NewRouter(opts Options, registrars ...Registrar) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(request.RequestID)
	r.Use(request.Logger(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(requesttime.Middleware)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Get("/healthz", healthHandler(opts.Health))
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(opts.Validator, opts.Logger))
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}
		for _, reg := range registrars {
			reg.Register(r)
		}
	})
	return r
}

func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
