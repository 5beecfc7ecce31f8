// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/shelfwatch/shelfwatch/internal/middleware"
)

// slowRequestThreshold flags requests worth a warning line. Cold-cache
// fleet scans can approach it.
const slowRequestThreshold = 2 * time.Second

// Router assembles the HTTP surface over one Handler.
type Router struct {
	handler       *Handler
	chiMiddleware *middleware.ChiMiddleware
	askLimiter    *middleware.IPRateLimiter
}

// NewRouter creates the router. The ask endpoint carries a dedicated
// token-bucket limiter under its windowed budget: question resolution is
// the one endpoint that never answers from cache, and the bucket enforces
// a sustained rate where the window only bounds each minute in isolation.
func NewRouter(handler *Handler) *Router {
	sec := handler.config.Security

	var askLimiter *middleware.IPRateLimiter
	if !sec.RateLimitDisabled {
		askLimiter = middleware.NewIPRateLimiter(middleware.RateLimitAsk.Requests, middleware.RateLimitAsk.Window)
	}

	return &Router{
		handler:       handler,
		chiMiddleware: middleware.NewChiMiddleware(middleware.FromSecurityConfig(sec)),
		askLimiter:    askLimiter,
	}
}

// Close releases router-held resources, currently the ask limiter's
// cleanup goroutine.
func (router *Router) Close() {
	if router.askLimiter != nil {
		router.askLimiter.Stop()
	}
}

// SetupChi configures all HTTP routes using the chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestIDWithLogging()) // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)              // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)           // Recover from panics
	r.Use(router.chiMiddleware.CORS())       // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Compression)
	r.Use(middleware.SlowRequestLog(slowRequestThreshold))

	// Unknown paths and wrong methods answer in the envelope too
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, ErrCodeNotFound, "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	// ========================
	// Health Endpoints
	// ========================
	// Permissive budget so monitors can probe frequently
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(middleware.RateLimitHealth))
		r.Use(middleware.Prometheus())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Analysis Endpoints
	// ========================
	// Read-only and cacheable downstream; budget sized for dashboard
	// exploration
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(middleware.RateLimitAnalytics))
		r.Use(middleware.Prometheus())

		r.Route("/coverage", func(r chi.Router) {
			r.Get("/", router.handler.Coverage)
			r.Get("/loss", router.handler.CoverageLoss)
			r.Get("/movement", router.handler.CoverageMovement)
			r.Get("/compare", router.handler.CoverageCompare)
		})

		r.Route("/availability", func(r chi.Router) {
			r.Get("/oos", router.handler.AvailabilityOOS)
			r.Get("/channels", router.handler.AvailabilityChannels)
			r.Get("/stoppage", router.handler.AvailabilityStoppage)
			r.Get("/decline", router.handler.AvailabilityDecline)
			r.Get("/impact", router.handler.AvailabilityImpact)
			r.Get("/overstock", router.handler.AvailabilityOverstock)
		})

		r.Route("/patterns", func(r chi.Router) {
			r.Get("/item", router.handler.PatternItem)
			r.Get("/seasonal", router.handler.PatternSeasonal)
			r.Get("/anomalies", router.handler.PatternAnomalies)
			r.Get("/stability", router.handler.PatternStability)
		})
	})

	// ========================
	// Report Endpoints
	// ========================
	// Tighter budget: reports fan out into several analyses per request
	r.Route("/api/v1/items", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(middleware.RateLimitReports))
		r.Use(middleware.Prometheus())
		r.Get("/{code}/health", router.handler.ItemHealth)
	})
	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(middleware.RateLimitReports))
		r.Use(middleware.Prometheus())
		r.Get("/brand/{brand}", router.handler.BrandDashboard)
	})

	// ========================
	// Ask Endpoint
	// ========================
	// Config-driven window budget plus the sustained token bucket
	r.Route("/api/v1/ask", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		if router.askLimiter != nil {
			r.Use(router.askLimiter.Middleware)
		}
		r.Use(middleware.Prometheus())
		r.Post("/", router.handler.Ask)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
