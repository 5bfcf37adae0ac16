package handlers

import (
	"net/http"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/application/services"
)

// FunnelHandler handles retention and stop-depth requests
type FunnelHandler struct {
	analytics *services.AnalyticsService
}

// NewFunnelHandler creates a new funnel handler
func NewFunnelHandler(analytics *services.AnalyticsService) *FunnelHandler {
	return &FunnelHandler{analytics: analytics}
}

// Retention handles GET /api/pathways/retention
func (h *FunnelHandler) Retention(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.Retention(r.Context(), scope, filter))
}

// StopDepth handles GET /api/pathways/stop-depth
func (h *FunnelHandler) StopDepth(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.StopDepth(r.Context(), scope, filter))
}
