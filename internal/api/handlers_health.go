// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package api

import (
	"net/http"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/logging"
)

// healthReport is the GET /api/v1/health payload.
type healthReport struct {
	Status        string          `json:"status"`
	Version       string          `json:"version,omitempty"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	Database      *database.Stats `json:"database,omitempty"`
	Cache         cacheHealth     `json:"cache"`
}

// cacheHealth summarizes the report cache for the health report.
type cacheHealth struct {
	Entries int     `json:"entries"`
	HitRate float64 `json:"hit_rate"`
}

// Health handles health check requests
//
// @Summary Get system health status
// @Description Returns health status including database connectivity, sales data span, report cache stats and uptime
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse{data=healthReport} "Health status retrieved successfully"
// @Router /api/v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// Check database connectivity (nil means not connected)
	status := "healthy"
	var stats *database.Stats
	if h.db == nil || h.db.Ping(r.Context()) != nil {
		status = "degraded"
	} else if s, err := h.db.GetStats(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Health stats query failed")
		status = "degraded"
	} else {
		stats = s
	}

	cacheStats := h.reports.GetStats()
	respondData(w, r, start, &healthReport{
		Status:        status,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Database:      stats,
		Cache: cacheHealth{
			Entries: cacheStats.Entries,
			HitRate: h.reports.HitRate(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK whenever the process is up, regardless of database state
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	respondData(w, r, start, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the service is ready to handle traffic
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK only if the database answers a ping. Returns 503 while not ready.
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Failure 503 {object} APIResponse "Service is not ready"
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil
	if !dbConnected {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database is not ready", nil)
		return
	}

	respondData(w, r, start, map[string]interface{}{
		"database_connected": true,
		"ready_to_serve":     true,
		"uptime":             time.Since(h.startTime).Seconds(),
	})
}
