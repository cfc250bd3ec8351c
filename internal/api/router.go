// Package api provides the HTTP API of the air quality index service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/breatheroute/airindex/internal/api/handler"
	"github.com/breatheroute/airindex/internal/api/middleware"
	"github.com/breatheroute/airindex/internal/api/response"
	"github.com/breatheroute/airindex/internal/assessment"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger

	// Service computes and interprets indices. Required.
	Service *assessment.Service

	// Metrics records OpenTelemetry HTTP metrics. Optional.
	Metrics *middleware.Metrics

	// MetricsHandler is mounted at /metrics when set (Prometheus scrape endpoint).
	MetricsHandler http.Handler

	// CORSAllowedOrigins enables CORS for the listed origins when non-empty.
	CORSAllowedOrigins []string

	// RequireTLS rejects plain-HTTP requests forwarded by a proxy.
	RequireTLS bool

	// Clock stamps health responses. Default: real clock.
	Clock clockwork.Clock
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID) // Generate/propagate request ID first
	r.Use(middleware.Tracing()) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(response.MethodNotAllowed)

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Clock)
	aqiHandler := handler.NewAQIHandler(cfg.Service)
	metadataHandler := handler.NewMetadataHandler(cfg.Service.DefaultStandard())

	computeRateLimit := middleware.RateLimitByIP(middleware.ComputeRateLimit)   // 120 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public, unlimited)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Index computation
		r.Route("/aqi", func(r chi.Router) {
			r.Use(computeRateLimit)
			r.Use(middleware.RequireJSON)
			r.Post("/calculate", aqiHandler.Calculate)
			r.Post("/interpret", aqiHandler.Interpret)
			r.Post("/convert", aqiHandler.Convert)
		})

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/breakpoints", metadataHandler.GetBreakpoints)
			r.Get("/enums", metadataHandler.GetEnums)
		})
	})

	return r
}
