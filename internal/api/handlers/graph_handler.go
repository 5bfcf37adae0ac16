package handlers

import (
	"net/http"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/application/services"
)

// GraphHandler handles drug graph requests
type GraphHandler struct {
	analytics *services.AnalyticsService
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(analytics *services.AnalyticsService) *GraphHandler {
	return &GraphHandler{analytics: analytics}
}

// Transitions handles GET /api/pathways/transitions
func (h *GraphHandler) Transitions(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.Transitions(r.Context(), scope, filter))
}

// CoOccurrence handles GET /api/pathways/co-occurrence
func (h *GraphHandler) CoOccurrence(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.CoOccurrence(r.Context(), scope, filter))
}
