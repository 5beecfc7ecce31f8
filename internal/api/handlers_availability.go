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

// channelsRequest carries the validated query parameters of
// AvailabilityChannels.
type channelsRequest struct {
	Item       string `validate:"required,itemcode"`
	RecentDays int    `validate:"omitempty,gt=0,lte=365"`
}

// AvailabilityOOS handles out-of-stock detection requests
//
// @Summary Detect out-of-stock candidates
// @Description Returns items whose recent sales collapsed against their own run rate, graded High (zero recent sales) or Medium, largest history first
// @Tags Availability
// @Accept json
// @Produce json
// @Param scope query string false "Analysis scope" default(company)
// @Param recent_days query int false "Trailing period treated as recent, in days" default(30)
// @Param min_historical query number false "Materiality floor on historical amount"
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.OOSReport} "OOS candidates retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/availability/oos [get]
func (h *Handler) AvailabilityOOS(w http.ResponseWriter, r *http.Request) {
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

	report, err := h.engine.DetectOOS(r.Context(), s, analytics.OOSOptions{
		AsOf:          asOf,
		RecentDays:    getIntParam(r, "recent_days", 0),
		MinHistorical: getFloatParam(r, "min_historical", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, report)
}

// AvailabilityChannels handles per-channel availability requests
//
// @Summary Get per-channel availability for one item
// @Description Splits one item's trailing year per sales channel and flags channels that sold historically but not recently
// @Tags Availability
// @Accept json
// @Produce json
// @Param item query string true "Item code"
// @Param recent_days query int false "Trailing period treated as recent, in days" default(30)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=[]models.ChannelAvailability} "Channel availability retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/availability/channels [get]
func (h *Handler) AvailabilityChannels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	asOf, err := asOfParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	req := channelsRequest{
		Item:       r.URL.Query().Get("item"),
		RecentDays: getIntParam(r, "recent_days", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	channels, err := h.engine.ChannelAvailability(r.Context(), req.Item, analytics.ChannelOptions{
		AsOf:       asOf,
		RecentDays: req.RecentDays,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, channels)
}

// AvailabilityStoppage handles multi-account stoppage requests
//
// @Summary Detect multi-account purchase stoppages
// @Description Returns items that several accounts stopped buying inside the recent band, most stopped accounts first
// @Tags Availability
// @Accept json
// @Produce json
// @Param scope query string false "Analysis scope" default(company)
// @Param recent_days query int false "Trailing period treated as recent, in days" default(30)
// @Param min_accounts query int false "Minimum stopped accounts per item" default(5)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=[]models.StoppageAlert} "Stoppage alerts retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/availability/stoppage [get]
func (h *Handler) AvailabilityStoppage(w http.ResponseWriter, r *http.Request) {
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

	alerts, err := h.engine.MultiAccountStoppage(r.Context(), s, analytics.StoppageOptions{
		AsOf:        asOf,
		RecentDays:  getIntParam(r, "recent_days", 0),
		MinAccounts: getIntParam(r, "min_accounts", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, alerts)
}

// AvailabilityDecline handles decline classification requests
//
// @Summary Classify one item's sales decline
// @Description Labels an item's decline as supply-driven, demand-driven, distribution-driven or none, with the evidence behind the label
// @Tags Availability
// @Accept json
// @Produce json
// @Param item query string true "Item code"
// @Param recent_days query int false "Recent band length in days" default(30)
// @Param historical_days query int false "Historical band length in days" default(90)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.DeclineClassification} "Decline classification retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 404 {object} APIResponse "Unknown item"
// @Router /api/v1/availability/decline [get]
func (h *Handler) AvailabilityDecline(w http.ResponseWriter, r *http.Request) {
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

	classification, err := h.engine.ClassifyDecline(r.Context(), item, analytics.DeclineOptions{
		AsOf:           asOf,
		RecentDays:     getIntParam(r, "recent_days", 0),
		HistoricalDays: getIntParam(r, "historical_days", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, classification)
}

// AvailabilityImpact handles OOS impact estimation requests
//
// @Summary Estimate the revenue impact of a stock-out
// @Description Estimates lost revenue for a hypothetical out-of-stock period from the item's average amount per actual sale day
// @Tags Availability
// @Accept json
// @Produce json
// @Param item query string true "Item code"
// @Param oos_days query int true "Stock-out length in days"
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=models.OOSImpact} "Impact estimate retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/availability/impact [get]
func (h *Handler) AvailabilityImpact(w http.ResponseWriter, r *http.Request) {
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

	impact, err := h.engine.EstimateOOSImpact(r.Context(), item, getIntParam(r, "oos_days", 0), asOf)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, impact)
}

// AvailabilityOverstock handles overstock risk requests
//
// @Summary Detect overstocked accounts
// @Description Returns accounts whose recent buy exceeds a multiple of their run rate while their last purchase has gone quiet
// @Tags Availability
// @Accept json
// @Produce json
// @Param recent_days query int false "Trailing period treated as recent, in days" default(90)
// @Param as_of query string false "Anchor date in YYYY-MM-DD format (default today)"
// @Success 200 {object} APIResponse{data=[]models.OverstockAccount} "Overstock accounts retrieved successfully"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Router /api/v1/availability/overstock [get]
func (h *Handler) AvailabilityOverstock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	asOf, err := asOfParam(r)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	accounts, err := h.engine.OverstockRisk(r.Context(), analytics.OverstockOptions{
		AsOf:       asOf,
		RecentDays: getIntParam(r, "recent_days", 0),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondData(w, r, start, accounts)
}
