package handlers

import (
	"net/http"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/application/services"
)

// CostHandler handles cost analytics requests
type CostHandler struct {
	analytics *services.AnalyticsService
}

// NewCostHandler creates a new cost handler
func NewCostHandler(analytics *services.AnalyticsService) *CostHandler {
	return &CostHandler{analytics: analytics}
}

// CostBreakdown handles GET /api/pathways/cost-breakdown
func (h *CostHandler) CostBreakdown(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.CostBreakdown(r.Context(), scope, filter))
}

// CostPerPatient handles GET /api/pathways/cost-per-patient
func (h *CostHandler) CostPerPatient(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.CostPerPatient(r.Context(), scope, filter))
}
