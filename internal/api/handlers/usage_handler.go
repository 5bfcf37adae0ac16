package handlers

import (
	"net/http"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/application/services"
)

// UsageHandler handles dosing, duration and timeline requests
type UsageHandler struct {
	analytics *services.AnalyticsService
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(analytics *services.AnalyticsService) *UsageHandler {
	return &UsageHandler{analytics: analytics}
}

// DosingIntervals handles GET /api/pathways/dosing-intervals
func (h *UsageHandler) DosingIntervals(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.DosingIntervals(r.Context(), scope, filter))
}

// AdministeredDoses handles GET /api/pathways/administered-doses
func (h *UsageHandler) AdministeredDoses(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.AdministeredDoses(r.Context(), scope, filter))
}

// TreatmentDuration handles GET /api/pathways/treatment-duration
func (h *UsageHandler) TreatmentDuration(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.TreatmentDuration(r.Context(), scope, filter))
}

// Timeline handles GET /api/pathways/timeline
func (h *UsageHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.Timeline(r.Context(), scope, filter))
}
