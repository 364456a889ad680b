package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/telalestate/propertydesk/internal/events"
	"github.com/telalestate/propertydesk/internal/service"
	"github.com/telalestate/propertydesk/pkg/cache"
)

const dashboardCachePrefix = "dashboard:"

// DashboardHandler serves aggregated dashboard summaries with a short-lived
// cache in front. Any data change event invalidates the whole prefix.
type DashboardHandler struct {
	aggregation *service.AggregationService
	cache       cache.Store
	ttl         time.Duration
	logger      *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(aggregation *service.AggregationService, cacheStore cache.Store, ttl time.Duration, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{aggregation: aggregation, cache: cacheStore, ttl: ttl, logger: logger}
}

// WatchEvents invalidates the dashboard cache whenever the data changes.
// Runs until the context is cancelled.
func (h *DashboardHandler) WatchEvents(ctx context.Context, hub *events.Hub) {
	ch, cancel := hub.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ev.Entity != "user" {
				h.cache.Invalidate(ctx, dashboardCachePrefix)
			}
		}
	}
}

// Summary handles GET /api/dashboard?period=
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = service.PeriodThisMonth
	}
	switch period {
	case service.PeriodThisWeek, service.PeriodThisMonth, service.PeriodThisYear, service.PeriodAll:
	default:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid period"})
		return
	}

	key := dashboardCachePrefix + period
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	summary, err := h.aggregation.Summary(period)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	body, err := json.Marshal(summary)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.cache.Set(r.Context(), key, string(body), h.ttl)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
