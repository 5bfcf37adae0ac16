package handlers

import (
	"net/http"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/application/services"
)

// RefreshHandler handles data freshness requests
type RefreshHandler struct {
	analytics *services.AnalyticsService
}

// NewRefreshHandler creates a new refresh handler
func NewRefreshHandler(analytics *services.AnalyticsService) *RefreshHandler {
	return &RefreshHandler{analytics: analytics}
}

// RefreshStatus handles GET /api/pathways/refresh-status
func (h *RefreshHandler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.analytics.RefreshStatus(r.Context()))
}
