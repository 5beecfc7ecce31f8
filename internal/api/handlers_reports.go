// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shelfwatch/shelfwatch/internal/analytics"
	"github.com/shelfwatch/shelfwatch/internal/cache"
	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

// ItemHealth handles item health report requests
//
// @Summary Get the integrated health report for one item
// @Description Combines coverage, pattern, decline and channel availability into one report for a single item
// @Tags Reports
// @Accept json
// @Produce json
// @Param code path string true "Item code"
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.ItemHealthReport} "Item health retrieved successfully"
// @Failure 404 {object} APIResponse "Unknown item"
// @Router /api/v1/items/{code}/health [get]
func (h *Handler) ItemHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, "item code must not be empty", nil)
		return
	}
	asOf, err := asOfParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	report, err := h.engine.ItemHealth(r.Context(), code, asOf)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, report)
}

// dashboardKey identifies one dashboard rendering in the report cache. The
// anchor date enters as the raw query value so implicit "now" requests share
// one entry whose TTL bounds staleness.
type dashboardKey struct {
	Brand      string `json:"brand"`
	RecentDays int    `json:"recent_days"`
	AsOf       string `json:"as_of"`
}

// BrandDashboard handles integrated brand dashboard requests
//
// @Summary Get the integrated supply-chain dashboard for one brand
// @Description Assembles out-of-stock candidates, stoppages, coverage loss, seasonal items and anomalies for one brand. Responses are cached; meta.cached marks a cache hit
// @Tags Reports
// @Accept json
// @Produce json
// @Param brand path string true "Brand name"
// @Param recent_days query int false "Trailing period treated as recent, in days" default(30)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.BrandDashboard} "Dashboard retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/dashboard/brand/{brand} [get]
func (h *Handler) BrandDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	brand := strings.TrimSpace(chi.URLParam(r, "brand"))
	if brand == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, "brand must not be empty", nil)
		return
	}
	asOf, err := asOfParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	recentDays := getIntParam(r, "recent_days", 0)

	var cacheKey string
	if h.config.Cache.Enabled {
		cacheKey = cache.GenerateKey("brand_dashboard", dashboardKey{
			Brand:      brand,
			RecentDays: recentDays,
			AsOf:       r.URL.Query().Get("as_of"),
		})
		if cached, found := h.reports.Get(cacheKey); found {
			if report, ok := cached.(*models.BrandDashboard); ok {
				respondDataCached(w, r, start, report, true)
				return
			}
		}
	}

	report, err := h.engine.BrandDashboard(r.Context(), scope.Brand(brand), analytics.DashboardOptions{
		AsOf:       asOf,
		RecentDays: recentDays,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	if h.config.Cache.Enabled {
		h.reports.Set(cacheKey, report)
	}
	respondData(w, r, start, report)
}
