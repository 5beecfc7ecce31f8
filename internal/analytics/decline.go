// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/models"
)

// Evidence floors for the supply-driven rules: below these, a zero recent
// band is noise rather than a stock-out signal.
const (
	declineMinHistoricalAmount   = 1000
	declineMinHistoricalAccounts = 5
)

// declineEvidence is the item's recent vs historical split the rules see.
type declineEvidence struct {
	RecentAmount       float64
	HistoricalAmount   float64
	RecentAccounts     int64
	HistoricalAccounts int64
}

// declineRule is one classification rule. The table below is evaluated
// top-to-bottom and the first match wins; precedence lives in the order of
// the slice, not in branch nesting.
type declineRule struct {
	cause  models.DeclineCause
	detail string
	match  func(ev declineEvidence) bool
}

var declineRules = []declineRule{
	{
		cause:  models.DeclineSupplyHighProbability,
		detail: "Sudden zero sales despite history",
		match: func(ev declineEvidence) bool {
			return ev.HistoricalAmount > declineMinHistoricalAmount && ev.RecentAmount == 0
		},
	},
	{
		cause:  models.DeclineSupplyWidespreadStoppage,
		detail: "All accounts stopped buying",
		match: func(ev declineEvidence) bool {
			return ev.HistoricalAccounts > declineMinHistoricalAccounts && ev.RecentAccounts == 0
		},
	},
	{
		cause:  models.DeclineDemandDeclining,
		detail: "Sales dropped but not zero",
		match: func(ev declineEvidence) bool {
			return ev.HistoricalAmount > 0 && ev.RecentAmount > 0 && ev.RecentAmount < ev.HistoricalAmount/2
		},
	},
}

// DeclineOptions parameterize ClassifyDecline.
type DeclineOptions struct {
	AsOf           time.Time
	RecentDays     int
	HistoricalDays int
}

// ClassifyDecline diagnoses whether an item's sales decline is supply-driven
// (an availability failure) or demand-driven (the market moved on), from the
// trailing-RecentDays band against the band between HistoricalDays and
// RecentDays ago. An item with no history at all classifies as Unknown.
func (e *Engine) ClassifyDecline(ctx context.Context, itemCode string, opts DeclineOptions) (_ *models.DeclineClassification, err error) {
	defer e.observe("classify_decline", time.Now(), &err)

	if itemCode == "" {
		return nil, models.NewInvalidParameterError("item_code", "must not be empty")
	}
	recentDays := orDefault(opts.RecentDays, e.cfg.DeclineRecentDays)
	if recentDays <= 0 {
		return nil, models.NewInvalidParameterError("recent_days", "must be a positive day count")
	}
	historicalDays := orDefault(opts.HistoricalDays, e.cfg.DeclineHistoricalDays)
	if historicalDays <= recentDays {
		return nil, models.NewInvalidParameterError("historical_days", "must exceed recent_days")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	recent := database.DaysWindow(asOf, recentDays)
	historical := database.Span(database.DaysWindow(asOf, historicalDays).Start, recent.Start)

	split, err := e.db.GetItemWindowSplit(ctx, itemCode, historical, recent)
	if err != nil {
		return nil, err
	}

	classification := &models.DeclineClassification{
		ItemCode:           itemCode,
		RecentAmount:       split.RecentAmount,
		HistoricalAmount:   split.HistoricalAmount,
		RecentAccounts:     split.RecentAccounts,
		HistoricalAccounts: split.HistoricalAccounts,
	}

	if split.RowCount == 0 {
		classification.Cause = models.DeclineNoData
		classification.Detail = "No sales history for this item"
		return classification, nil
	}

	ev := declineEvidence{
		RecentAmount:       split.RecentAmount,
		HistoricalAmount:   split.HistoricalAmount,
		RecentAccounts:     split.RecentAccounts,
		HistoricalAccounts: split.HistoricalAccounts,
	}
	for _, rule := range declineRules {
		if rule.match(ev) {
			classification.Cause = rule.cause
			classification.Detail = rule.detail
			return classification, nil
		}
	}

	classification.Cause = models.DeclineInconclusive
	classification.Detail = "Needs manual check"
	return classification, nil
}
