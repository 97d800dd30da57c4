package routes

import (
	"net/http"

	"github.com/medatlas/hospital-discovery/internal/api/handlers"
	"github.com/medatlas/hospital-discovery/internal/api/middleware"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	matchHandler     *handlers.MatchHandler
	hospitalHandler  *handlers.HospitalHandler
	conditionHandler *handlers.ConditionHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	matchHandler *handlers.MatchHandler,
	hospitalHandler *handlers.HospitalHandler,
	conditionHandler *handlers.ConditionHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		matchHandler:     matchHandler,
		hospitalHandler:  hospitalHandler,
		conditionHandler: conditionHandler,

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

	// Matching endpoint
	r.mux.HandleFunc("POST /api/hospitals/match", r.matchHandler.MatchHospitals)

	// Hospital catalog endpoints
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.BrowseHospitals)
	r.mux.HandleFunc("GET /api/hospitals/{id}", r.hospitalHandler.GetHospital)

	// Condition catalog endpoints
	r.mux.HandleFunc("GET /api/conditions", r.conditionHandler.ListConditions)
	r.mux.HandleFunc("GET /api/conditions/suggest", r.conditionHandler.SuggestConditions)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	handler = middleware.CORSMiddleware(handler)

	return handler
}
