package routes

import (
	"net/http"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/api/handlers"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/api/middleware"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	pathwayHandler *handlers.PathwayHandler
	costHandler    *handlers.CostHandler
	graphHandler   *handlers.GraphHandler
	usageHandler   *handlers.UsageHandler
	funnelHandler  *handlers.FunnelHandler
	refreshHandler *handlers.RefreshHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	pathwayHandler *handlers.PathwayHandler,
	costHandler *handlers.CostHandler,
	graphHandler *handlers.GraphHandler,
	usageHandler *handlers.UsageHandler,
	funnelHandler *handlers.FunnelHandler,
	refreshHandler *handlers.RefreshHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		pathwayHandler: pathwayHandler,
		costHandler:    costHandler,
		graphHandler:   graphHandler,
		usageHandler:   usageHandler,
		funnelHandler:  funnelHandler,
		refreshHandler: refreshHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Hierarchy and share endpoints
	r.mux.HandleFunc("GET /api/pathways/hierarchy", r.pathwayHandler.Hierarchy)
	r.mux.HandleFunc("GET /api/pathways/market-share", r.pathwayHandler.MarketShare)
	r.mux.HandleFunc("GET /api/pathways/directory-share", r.pathwayHandler.DirectoryShare)
	r.mux.HandleFunc("GET /api/pathways/pivot", r.pathwayHandler.Pivot)
	r.mux.HandleFunc("GET /api/pathways/filters", r.pathwayHandler.FilterOptions)

	// Cost endpoints
	r.mux.HandleFunc("GET /api/pathways/cost-breakdown", r.costHandler.CostBreakdown)
	r.mux.HandleFunc("GET /api/pathways/cost-per-patient", r.costHandler.CostPerPatient)

	// Drug graph endpoints
	r.mux.HandleFunc("GET /api/pathways/transitions", r.graphHandler.Transitions)
	r.mux.HandleFunc("GET /api/pathways/co-occurrence", r.graphHandler.CoOccurrence)

	// Dosing, duration and timeline endpoints
	r.mux.HandleFunc("GET /api/pathways/dosing-intervals", r.usageHandler.DosingIntervals)
	r.mux.HandleFunc("GET /api/pathways/administered-doses", r.usageHandler.AdministeredDoses)
	r.mux.HandleFunc("GET /api/pathways/treatment-duration", r.usageHandler.TreatmentDuration)
	r.mux.HandleFunc("GET /api/pathways/timeline", r.usageHandler.Timeline)

	// Funnel endpoints
	r.mux.HandleFunc("GET /api/pathways/retention", r.funnelHandler.Retention)
	r.mux.HandleFunc("GET /api/pathways/stop-depth", r.funnelHandler.StopDepth)

	// Data freshness endpoint
	r.mux.HandleFunc("GET /api/pathways/refresh-status", r.refreshHandler.RefreshStatus)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
