package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/api/handlers"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/application/services"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/repositories"
	apperrors "github.com/andrewcharlwood/HighCostDrugsPathways-sub001/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPathwayRepo struct {
	nodes      []*entities.PathwayNode
	err        error
	lastScope  entities.QueryScope
	lastFilter repositories.NodeFilter
}

func (s *stubPathwayRepo) ListNodes(_ context.Context, scope entities.QueryScope, filter repositories.NodeFilter) ([]*entities.PathwayNode, error) {
	s.lastScope = scope
	s.lastFilter = filter
	return s.nodes, s.err
}

type stubRefreshRepo struct {
	entry *entities.RefreshLogEntry
	err   error
}

func (s *stubRefreshRepo) Latest(context.Context) (*entities.RefreshLogEntry, error) {
	return s.entry, s.err
}

type stubIndicationRepo struct{}

func (stubIndicationRepo) ListIndications(context.Context) ([]string, error) {
	return []string{"Rheumatoid arthritis"}, nil
}

func newAnalytics(pathways *stubPathwayRepo, refresh *stubRefreshRepo) *services.AnalyticsService {
	return services.NewAnalyticsService(pathways, refresh, stubIndicationRepo{})
}

func TestPathwayHandler_MarketShare(t *testing.T) {
	pathways := &stubPathwayRepo{nodes: []*entities.PathwayNode{
		{Level: 3, Labels: "ADA", Directory: "RHEUM", Value: 100},
		{Level: 3, Labels: "ETA", Directory: "RHEUM", Value: 50},
	}}
	handler := handlers.NewPathwayHandler(newAnalytics(pathways, &stubRefreshRepo{}))

	req := httptest.NewRequest("GET", "/api/pathways/market-share?date_filter_id=2&chart_type=directorate", nil)
	w := httptest.NewRecorder()

	handler.MarketShare(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.QueryScope{DateFilterID: 2, ChartType: "directorate"}, pathways.lastScope)

	var response entities.MarketShareResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Entries, 2)
	assert.Equal(t, "ADA", response.Entries[0].Drug)
	assert.Equal(t, 0.6667, response.Entries[0].Proportion)
}

func TestPathwayHandler_DefaultScope(t *testing.T) {
	pathways := &stubPathwayRepo{}
	handler := handlers.NewPathwayHandler(newAnalytics(pathways, &stubRefreshRepo{}))

	req := httptest.NewRequest("GET", "/api/pathways/hierarchy", nil)
	w := httptest.NewRecorder()

	handler.Hierarchy(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.QueryScope{DateFilterID: 1, ChartType: entities.ChartTypeTrust}, pathways.lastScope)
}

func TestPathwayHandler_FilterParams(t *testing.T) {
	pathways := &stubPathwayRepo{}
	handler := handlers.NewPathwayHandler(newAnalytics(pathways, &stubRefreshRepo{}))

	req := httptest.NewRequest("GET", "/api/pathways/hierarchy?trusts=TRUST1,TRUST2&drugs=ADA", nil)
	w := httptest.NewRecorder()

	handler.Hierarchy(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"TRUST1", "TRUST2"}, pathways.lastFilter.Trusts)
	assert.Equal(t, []string{"ADA"}, pathways.lastFilter.Drugs)
	assert.Empty(t, pathways.lastFilter.Directorates)
}

func TestPathwayHandler_InvalidDateFilterID(t *testing.T) {
	handler := handlers.NewPathwayHandler(newAnalytics(&stubPathwayRepo{}, &stubRefreshRepo{}))

	req := httptest.NewRequest("GET", "/api/pathways/hierarchy?date_filter_id=abc", nil)
	w := httptest.NewRecorder()

	handler.Hierarchy(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPathwayHandler_InvalidChartType(t *testing.T) {
	handler := handlers.NewPathwayHandler(newAnalytics(&stubPathwayRepo{}, &stubRefreshRepo{}))

	req := httptest.NewRequest("GET", "/api/pathways/market-share?chart_type=region", nil)
	w := httptest.NewRecorder()

	handler.MarketShare(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["error"], "chart_type")
}

func TestPathwayHandler_StoreUnavailableStillOK(t *testing.T) {
	pathways := &stubPathwayRepo{err: apperrors.NewStoreUnavailableError("Database not found", nil)}
	handler := handlers.NewPathwayHandler(newAnalytics(pathways, &stubRefreshRepo{}))

	req := httptest.NewRequest("GET", "/api/pathways/market-share", nil)
	w := httptest.NewRecorder()

	handler.MarketShare(w, req)

	// A missing store degrades inside the result rather than failing the request.
	assert.Equal(t, http.StatusOK, w.Code)

	var response entities.MarketShareResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Database not found", response.Error)
	assert.Empty(t, response.Entries)
}

func TestPathwayHandler_FilterOptions(t *testing.T) {
	pathways := &stubPathwayRepo{nodes: []*entities.PathwayNode{
		{Level: 1, Labels: "TRUST1"},
		{Level: 2, Labels: "RHEUM"},
		{Level: 3, Labels: "ADA"},
	}}
	handler := handlers.NewPathwayHandler(newAnalytics(pathways, &stubRefreshRepo{}))

	req := httptest.NewRequest("GET", "/api/pathways/filters", nil)
	w := httptest.NewRecorder()

	handler.FilterOptions(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entities.FilterOptionsResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, []string{"TRUST1"}, response.Trusts)
	assert.Equal(t, []string{"ADA"}, response.Drugs)
	assert.Equal(t, []string{"Rheumatoid arthritis"}, response.Indications)
}

func TestRefreshHandler_RefreshStatus(t *testing.T) {
	refresh := &stubRefreshRepo{entry: &entities.RefreshLogEntry{
		Status:         entities.RefreshStatusCompleted,
		SourceRowCount: 42,
		StartedAt:      "2023-12-01 02:00:00",
		CompletedAt:    "2023-12-01 02:14:09",
	}}
	handler := handlers.NewRefreshHandler(newAnalytics(&stubPathwayRepo{}, refresh))

	req := httptest.NewRequest("GET", "/api/pathways/refresh-status", nil)
	w := httptest.NewRecorder()

	handler.RefreshStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entities.RefreshStatusResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, entities.RefreshStatusCompleted, response.Status)
	assert.Equal(t, 42, response.SourceRowCount)
}

func TestFunnelHandler_Retention(t *testing.T) {
	pathways := &stubPathwayRepo{nodes: []*entities.PathwayNode{
		{Level: 3, Value: 1000},
		{Level: 4, Value: 400},
	}}
	handler := handlers.NewFunnelHandler(newAnalytics(pathways, &stubRefreshRepo{}))

	req := httptest.NewRequest("GET", "/api/pathways/retention", nil)
	w := httptest.NewRecorder()

	handler.Retention(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entities.FunnelResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Stages, 2)
	assert.Equal(t, 40.0, response.Stages[1].Percentage)
}
