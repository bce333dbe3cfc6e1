package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Maddesumit/synthetic-arb-engine/internal/api/handlers"
	"github.com/Maddesumit/synthetic-arb-engine/internal/api/middleware"
)

// Router wraps mux.Router to add more functionality
type Router struct {
	*mux.Router
	middleware []mux.MiddlewareFunc
	endpoint   string
}

// NewRouter creates and configures a new router with all dependencies. The
// promRegistry carries the engine's Prometheus collectors and backs /metrics.
func NewRouter(
	metricsHandler *handlers.MetricsHandler,
	promRegistry *prometheus.Registry,
	endpoint string,
) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		middleware: []mux.MiddlewareFunc{
			middleware.Logging,
		},
		endpoint: endpoint,
	}

	r.setup()
	r.registerRoutes(metricsHandler, promRegistry)

	return r
}

// setup configures the base router with middleware and common settings
func (r *Router) setup() {
	for _, m := range r.middleware {
		r.Use(m)
	}
}

// registerRoutes registers all application routes
func (r *Router) registerRoutes(
	metricsHandler *handlers.MetricsHandler,
	promRegistry *prometheus.Registry,
) {
	api := r.PathPrefix(r.endpoint).Subrouter()

	api.HandleFunc("/metrics", metricsHandler.GetSnapshot).Methods("GET")
	api.HandleFunc("/metrics/reset", metricsHandler.ResetMetrics).Methods("POST")
	api.HandleFunc("/alerts", metricsHandler.GetAlerts).Methods("GET")

	r.HandleFunc("/health", metricsHandler.GetHealth).Methods("GET")
	r.HandleFunc("/ws/metrics", metricsHandler.StreamMetrics)
	r.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})).Methods("GET")
}

// AddMiddleware adds a new middleware to the router
func (r *Router) AddMiddleware(middleware mux.MiddlewareFunc) {
	r.Use(middleware)
}
