// Package httpapi mounts every public endpoint on one chi router.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caselaw/internal/platform/metrics"
	"caselaw/internal/platform/middleware"
	searchhandler "caselaw/internal/search/handler"
	"caselaw/pkg/platform/httputil"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Dependencies are the handlers and platform pieces the router mounts.
type Dependencies struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Search    *searchhandler.Handler
	Documents http.Handler
	// Health is optional; nil reports healthy.
	Health HealthChecker
}

// NewRouter wires all public endpoints. Search routes are matched first; any
// other GET is a browse page when it names a court and year, otherwise a
// document.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger, deps.Metrics))

	r.Get("/healthz", handleHealth(deps.Health))
	r.Handle("/metrics", promhttp.Handler())

	deps.Search.Register(r)
	r.Get("/*", deps.Search.HandleBrowse(deps.Documents))
	return r
}

func handleHealth(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
