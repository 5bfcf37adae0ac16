package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/application/services"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/repositories"
)

// PathwayHandler handles hierarchy and share requests
type PathwayHandler struct {
	analytics *services.AnalyticsService
}

// NewPathwayHandler creates a new pathway handler
func NewPathwayHandler(analytics *services.AnalyticsService) *PathwayHandler {
	return &PathwayHandler{analytics: analytics}
}

// Hierarchy handles GET /api/pathways/hierarchy
func (h *PathwayHandler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.Hierarchy(r.Context(), scope, filter))
}

// MarketShare handles GET /api/pathways/market-share
func (h *PathwayHandler) MarketShare(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.MarketShare(r.Context(), scope, filter))
}

// DirectoryShare handles GET /api/pathways/directory-share
func (h *PathwayHandler) DirectoryShare(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.DirectoryShare(r.Context(), scope, filter))
}

// Pivot handles GET /api/pathways/pivot
func (h *PathwayHandler) Pivot(w http.ResponseWriter, r *http.Request) {
	scope, filter, ok := parseQuery(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.Pivot(r.Context(), scope, filter))
}

// FilterOptions handles GET /api/pathways/filters
func (h *PathwayHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	scope, ok := parseScope(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.analytics.FilterOptions(r.Context(), scope))
}

// parseScope decodes the date_filter_id and chart_type query parameters,
// writing a 400 response and returning false on invalid input.
func parseScope(w http.ResponseWriter, r *http.Request) (entities.QueryScope, bool) {
	scope := entities.QueryScope{
		DateFilterID: 1,
		ChartType:    entities.ChartTypeTrust,
	}

	if raw := r.URL.Query().Get("date_filter_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			respondWithError(w, http.StatusBadRequest, "date_filter_id must be a positive integer")
			return scope, false
		}
		scope.DateFilterID = id
	}

	if raw := r.URL.Query().Get("chart_type"); raw != "" {
		if raw != entities.ChartTypeTrust && raw != entities.ChartTypeDirectorate {
			respondWithError(w, http.StatusBadRequest, "chart_type must be 'trust' or 'directorate'")
			return scope, false
		}
		scope.ChartType = raw
	}

	return scope, true
}

// parseQuery decodes scope plus the optional trusts/directorates/drugs
// filter parameters.
func parseQuery(w http.ResponseWriter, r *http.Request) (entities.QueryScope, repositories.NodeFilter, bool) {
	scope, ok := parseScope(w, r)
	if !ok {
		return scope, repositories.NodeFilter{}, false
	}

	filter := repositories.NodeFilter{
		Trusts:       splitParam(r.URL.Query().Get("trusts")),
		Directorates: splitParam(r.URL.Query().Get("directorates")),
		Drugs:        splitParam(r.URL.Query().Get("drugs")),
	}
	return scope, filter, true
}

// splitParam decodes a comma-separated multi-value query parameter.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
