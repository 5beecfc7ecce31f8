// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package api

import (
	"net/http"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/analytics"
)

// PatternItem handles single-item pattern classification requests
//
// @Summary Classify one item's demand pattern
// @Description Labels an item's monthly series as Stable, Seasonal, Fluctuating, Moderate Variation or Strange (Spike/Drop), with confidence and evidence
// @Tags Patterns
// @Accept json
// @Produce json
// @Param item query string true "Item code"
// @Param months query int false "Trailing series length in months" default(12)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.PatternClassification} "Pattern retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 404 {object} APIResponse "Unknown item"
// @Router /api/v1/patterns/item [get]
func (h *Handler) PatternItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	item, err := itemParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	asOf, err := asOfParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	pattern, err := h.engine.ClassifyPattern(r.Context(), item, analytics.PatternOptions{
		AsOf:   asOf,
		Months: getIntParam(r, "months", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, pattern)
}

// PatternSeasonal handles seasonal fleet scan requests
//
// @Summary Scan the scope for seasonal items
// @Description Classifies every item in scope above the sales floor and returns the ones whose series tested seasonal, largest first
// @Tags Patterns
// @Accept json
// @Produce json
// @Param scope query string false "Analysis scope" default(company)
// @Param months query int false "Trailing series length in months" default(24)
// @Param min_total query number false "Sales floor over the scan window"
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=[]models.SeasonalItem} "Seasonal items retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/patterns/seasonal [get]
func (h *Handler) PatternSeasonal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, err := scopeParam(r, "scope")
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	asOf, err := asOfParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	items, err := h.engine.SeasonalScan(r.Context(), s, analytics.SeasonalScanOptions{
		AsOf:     asOf,
		Months:   getIntParam(r, "months", 0),
		MinTotal: getFloatParam(r, "min_total", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, items)
}

// PatternAnomalies handles anomaly fleet scan requests
//
// @Summary Scan the scope for anomalous months
// @Description Returns one event per item-month whose standardized score exceeds the z threshold, sorted by item then month
// @Tags Patterns
// @Accept json
// @Produce json
// @Param scope query string false "Analysis scope" default(company)
// @Param months query int false "Trailing series length in months" default(12)
// @Param z query number false "Absolute z-score threshold" default(2.5)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=[]models.AnomalyEvent} "Anomalies retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/patterns/anomalies [get]
func (h *Handler) PatternAnomalies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, err := scopeParam(r, "scope")
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	asOf, err := asOfParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	events, err := h.engine.AnomalyScan(r.Context(), s, analytics.AnomalyScanOptions{
		AsOf:   asOf,
		Months: getIntParam(r, "months", 0),
		Z:      getFloatParam(r, "z", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, events)
}

// PatternStability handles run-rate stability requests
//
// @Summary Grade the scope's run-rate stability
// @Description Grades how steady the scope's monthly run rate is from the coefficient of variation of its series
// @Tags Patterns
// @Accept json
// @Produce json
// @Param scope query string false "Analysis scope" default(company)
// @Param months query int false "Trailing series length in months" default(12)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.StabilityReport} "Stability report retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/patterns/stability [get]
func (h *Handler) PatternStability(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s, err := scopeParam(r, "scope")
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	asOf, err := asOfParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	report, err := h.engine.RunRateStability(r.Context(), s, analytics.StabilityOptions{
		AsOf:   asOf,
		Months: getIntParam(r, "months", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, report)
}
