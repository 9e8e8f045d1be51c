// Package handler wires the screening HTTP endpoints to the screening
// service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vigil/internal/payments"
	"vigil/internal/platform/middleware"
	"vigil/internal/results"
	"vigil/internal/screening"
	"vigil/internal/screening/models"
	"vigil/internal/watchlist"
	dErrors "vigil/pkg/domain-errors"
	"vigil/pkg/httputil"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

// Service defines the screening operations the handler needs.
type Service interface {
	Screen(ctx context.Context, candidate models.Candidate, opts ...screening.ScreenOption) (*models.ScreeningResult, error)
}

// Handler serves the screening API.
type Handler struct {
	service   Service
	watchlist watchlist.Store
	results   results.Store
	stats     *payments.Stats
	logger    *slog.Logger
}

func New(service Service, store watchlist.Store, resultStore results.Store, stats *payments.Stats, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		watchlist: store,
		results:   resultStore,
		stats:     stats,
		logger:    logger,
	}
}

// Register mounts the screening endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/screening/screen", h.HandleScreen)
	r.Get("/screening/recent", h.HandleRecent)
	r.Get("/screening/stats", h.HandleStats)
	r.Get("/watchlist/lists", h.HandleLists)
}

// HandleScreen handles POST /v1/screening/screen.
func (h *Handler) HandleScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[ScreenRequest](w, r)
	if !ok {
		return
	}

	var opts []screening.ScreenOption
	if req.Threshold != nil {
		opts = append(opts, screening.WithThresholdOverride(*req.Threshold))
	}

	result, err := h.service.Screen(ctx, req.Candidate(), opts...)
	if err != nil {
		h.logger.ErrorContext(ctx, "screening failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "candidate screened",
		"request_id", requestID,
		"screening_id", result.ID,
		"decision", result.Decision,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleRecent handles GET /v1/screening/recent.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		if parsed > maxRecentLimit {
			parsed = maxRecentLimit
		}
		limit = parsed
	}

	recent, err := h.results.RecentScreenings(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load recent screenings", "error", err)
		httputil.WriteError(w, err)
		return
	}
	out := make([]ScreenResponse, 0, len(recent))
	for _, res := range recent {
		out = append(out, FromResult(&res))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleStats handles GET /v1/screening/stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.stats.Snapshot())
}

// HandleLists handles GET /v1/watchlist/lists.
func (h *Handler) HandleLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.watchlist.Lists(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load watchlist inventory", "error", err)
		httputil.WriteError(w, err)
		return
	}
	out := make([]ListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, ListResponse{Name: l.Name, Source: l.Source})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
