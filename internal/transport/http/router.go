// Package httptransport assembles the HTTP router: shared middleware, the
// versioned API, and the operational endpoints.
package httptransport

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vigil/internal/platform/metrics"
	"vigil/internal/platform/middleware"
	"vigil/internal/platform/redis"
	screeninghandler "vigil/internal/screening/handler"
	"vigil/pkg/httputil"
)

// Deps carries everything the router mounts. Nil optional dependencies mean
// the corresponding health probe is skipped.
type Deps struct {
	Screening *screeninghandler.Handler
	Logger    *slog.Logger
	DB        *sql.DB
	Redis     *redis.Client
}

// NewRouter builds the chi router with the standard middleware chain.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		deps.Screening.Register(r)
	})

	r.Get("/healthz", healthHandler(deps))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

func healthHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		healthy := true

		if deps.DB != nil {
			if err := deps.DB.PingContext(r.Context()); err != nil {
				checks["postgres"] = err.Error()
				healthy = false
			} else {
				checks["postgres"] = "ok"
			}
		}
		if deps.Redis != nil {
			if err := deps.Redis.Health(r.Context()); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		state := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
