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

// coverageRequest carries the validated query parameters of Coverage.
type coverageRequest struct {
	Windows   []int  `validate:"omitempty,increasing"`
	Dimension string `validate:"omitempty,oneof=account_name channel emirate"`
}

// Coverage handles coverage ladder requests
//
// @Summary Get coverage over trailing windows
// @Description Returns distinct-buyer coverage, total amount and transaction count for each trailing window of the ladder
// @Tags Coverage
// @Accept json
// @Produce json
// @Param scope query string false "Analysis scope (company, brand:NAME, brandmask:PATTERN, item:CODE)" default(company)
// @Param windows query string false "Comma-separated trailing horizons in months, strictly increasing" default(12,24,36,48)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Param dimension query string false "Coverage unit (account_name, channel or emirate)" default(account_name)
// @Param channel query string false "Comma-separated channel filter"
// @Param emirate query string false "Comma-separated emirate filter"
// @Success 200 {object} APIResponse{data=models.CoverageReport} "Coverage retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/coverage [get]
func (h *Handler) Coverage(w http.ResponseWriter, r *http.Request) {
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

	req := coverageRequest{
		Windows:   parseCommaSeparatedInts(r.URL.Query().Get("windows")),
		Dimension: r.URL.Query().Get("dimension"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	report, err := h.engine.CoverageByHorizons(r.Context(), s, analytics.CoverageOptions{
		Dimension: req.Dimension,
		AsOf:      asOf,
		Windows:   req.Windows,
		Channels:  parseCommaSeparated(r.URL.Query().Get("channel")),
		Emirates:  parseCommaSeparated(r.URL.Query().Get("emirate")),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, report)
}

// CoverageLoss handles lost-coverage requests
//
// @Summary Get lost coverage
// @Description Returns the dimension values that bought inside the historical band but not inside the recent band, with their full-history aggregates
// @Tags Coverage
// @Accept json
// @Produce json
// @Param scope query string false "Analysis scope" default(company)
// @Param recent_months query int false "Recent band length in months" default(12)
// @Param historical_months query int false "Historical band length in months" default(24)
// @Param dimension query string false "Coverage unit (account_name, channel or emirate)" default(account_name)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.CoverageLossReport} "Lost coverage retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/coverage/loss [get]
func (h *Handler) CoverageLoss(w http.ResponseWriter, r *http.Request) {
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

	report, err := h.engine.CoverageLoss(r.Context(), s, analytics.LossOptions{
		Dimension:        r.URL.Query().Get("dimension"),
		AsOf:             asOf,
		RecentMonths:     getIntParam(r, "recent_months", 0),
		HistoricalMonths: getIntParam(r, "historical_months", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, report)
}

// CoverageMovement handles buyer movement requests
//
// @Summary Get buyer movement between adjacent periods
// @Description Returns new, lost and retained buyer counts between two adjacent periods of equal length ending at the anchor date
// @Tags Coverage
// @Accept json
// @Produce json
// @Param scope query string false "Analysis scope" default(company)
// @Param period_months query int false "Period length in months" default(12)
// @Param dimension query string false "Coverage unit (account_name, channel or emirate)" default(account_name)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.AccountMovement} "Movement retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/coverage/movement [get]
func (h *Handler) CoverageMovement(w http.ResponseWriter, r *http.Request) {
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

	movement, err := h.engine.AccountMovement(r.Context(), s, analytics.MovementOptions{
		Dimension:    r.URL.Query().Get("dimension"),
		AsOf:         asOf,
		PeriodMonths: getIntParam(r, "period_months", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, movement)
}

// CoverageCompare handles scope comparison requests
//
// @Summary Compare two scopes over the same window
// @Description Returns both scopes' coverage over the same trailing window plus the overlap between their buyer sets
// @Tags Coverage
// @Accept json
// @Produce json
// @Param scope_a query string true "First scope (e.g. brand:DUPHALAC)"
// @Param scope_b query string true "Second scope (e.g. brand:CETAPHIL)"
// @Param months query int false "Trailing window in months" default(12)
// @Param dimension query string false "Coverage unit (account_name, channel or emirate)" default(account_name)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.ScopeComparison} "Comparison retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/coverage/compare [get]
func (h *Handler) CoverageCompare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	a, err := requiredScopeParam(r, "scope_a")
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	b, err := requiredScopeParam(r, "scope_b")
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	asOf, err := asOfParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	comparison, err := h.engine.CompareScopes(r.Context(), a, b, analytics.CompareOptions{
		Dimension: r.URL.Query().Get("dimension"),
		AsOf:      asOf,
		Months:    getIntParam(r, "months", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, comparison)
}
