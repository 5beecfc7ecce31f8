// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
	"github.com/shelfwatch/shelfwatch/internal/stats"
)

// Forecast suggestions attached to out-of-stock candidates by risk level.
const (
	suggestionHighRisk   = "Increase forecast by 20% to recover lost sales"
	suggestionMediumRisk = "Review stock levels and pending orders"
)

// OOSOptions parameterize DetectOOS.
type OOSOptions struct {
	// AsOf anchors the analysis. Zero means now.
	AsOf time.Time
	// RecentDays is the trailing period treated as "recent". Default 30.
	RecentDays int
	// MinHistorical overrides the materiality floor on historical amount.
	MinHistorical float64
}

// DetectOOS flags items whose recent sales collapsed against their own run
// rate. The trailing year splits into a recent band (last RecentDays) and a
// historical band (the rest); an item is a candidate when its recent amount
// falls below the configured ratio of its average monthly amount, computed
// over the months it actually sold in. Zero recent sales grade High,
// everything else Medium. Sorted by historical amount descending.
func (e *Engine) DetectOOS(ctx context.Context, s scope.Scope, opts OOSOptions) (_ *models.OOSReport, err error) {
	defer e.observe("detect_oos", time.Now(), &err)

	recentDays := orDefault(opts.RecentDays, e.cfg.OOSRecentDays)
	if recentDays <= 0 {
		return nil, models.NewInvalidParameterError("recent_days", "must be a positive day count")
	}
	if recentDays >= 365 {
		return nil, models.NewInvalidParameterError("recent_days", "must leave a historical band inside the trailing year")
	}
	minHistorical := orDefaultFloat(opts.MinHistorical, e.cfg.OOSMinHistorical)

	asOf := database.ResolveAsOf(opts.AsOf)
	horizon := database.MonthsWindow(asOf, analysisHorizonMonths)
	cut := database.DaysWindow(asOf, recentDays).Start

	rows, err := e.db.GetItemAvailabilityRows(ctx, filterFor(s), horizon, cut, minHistorical)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.OOSCandidate, 0, len(rows))
	for _, row := range rows {
		activeMonths := row.ActiveMonths
		if activeMonths < 1 {
			activeMonths = 1
		}
		avgMonthly := row.HistoricalAmount / float64(activeMonths)
		if row.RecentAmount >= e.cfg.OOSRatio*avgMonthly {
			continue
		}

		candidate := models.OOSCandidate{
			ItemCode:               row.ItemCode,
			ItemDesc:               row.ItemDesc,
			Brand:                  row.Brand,
			HistoricalAmount:       row.HistoricalAmount,
			HistoricalQty:          row.HistoricalQty,
			HistoricalTransactions: row.HistoricalTransactions,
			AffectedAccounts:       row.AffectedAccounts,
			AvgMonthlyAmount:       stats.Round(avgMonthly, 2),
			RecentAmount:           row.RecentAmount,
			LastSaleDate:           row.LastSaleDate,
			DaysSinceLastSale:      database.DaysBetween(row.LastSaleDate, asOf),
		}
		if row.RecentAmount == 0 {
			candidate.RiskLevel = models.RiskHigh
			candidate.ForecastSuggestion = suggestionHighRisk
		} else {
			candidate.RiskLevel = models.RiskMedium
			candidate.ForecastSuggestion = suggestionMediumRisk
		}
		candidates = append(candidates, candidate)
	}

	return &models.OOSReport{
		Scope:         s.String(),
		AsOf:          asOf,
		RecentDays:    recentDays,
		MinHistorical: minHistorical,
		Candidates:    candidates,
	}, nil
}

// ChannelOptions parameterize ChannelAvailability.
type ChannelOptions struct {
	AsOf       time.Time
	RecentDays int
}

// ChannelAvailability splits one item's trailing year per sales channel. A
// channel that sold historically but not recently is a channel-local
// availability gap: the item exists, but not on that shelf.
func (e *Engine) ChannelAvailability(ctx context.Context, itemCode string, opts ChannelOptions) (_ []models.ChannelAvailability, err error) {
	defer e.observe("channel_availability", time.Now(), &err)

	if itemCode == "" {
		return nil, models.NewInvalidParameterError("item_code", "must not be empty")
	}
	recentDays := orDefault(opts.RecentDays, e.cfg.OOSRecentDays)
	if recentDays <= 0 {
		return nil, models.NewInvalidParameterError("recent_days", "must be a positive day count")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	horizon := database.MonthsWindow(asOf, analysisHorizonMonths)
	cut := database.DaysWindow(asOf, recentDays).Start

	splits, err := e.db.GetChannelSplits(ctx, itemCode, horizon, cut)
	if err != nil {
		return nil, err
	}

	channels := make([]models.ChannelAvailability, 0, len(splits))
	for _, split := range splits {
		channels = append(channels, models.ChannelAvailability{
			Channel:            split.Channel,
			RecentAmount:       split.RecentAmount,
			HistoricalAmount:   split.HistoricalAmount,
			RecentAccounts:     split.RecentAccounts,
			HistoricalAccounts: split.HistoricalAccounts,
			OOSRisk:            split.HistoricalAmount > 0 && split.RecentAmount == 0,
			DropPct:            stats.Round((split.HistoricalAmount-split.RecentAmount)/split.HistoricalAmount*100, 2),
		})
	}
	return channels, nil
}

// StoppageOptions parameterize MultiAccountStoppage.
type StoppageOptions struct {
	AsOf        time.Time
	RecentDays  int
	MinAccounts int
}

// MultiAccountStoppage finds items that several accounts stopped buying at
// around the same time. One account dropping an item is churn; five accounts
// dropping it inside the same month is a supply problem.
func (e *Engine) MultiAccountStoppage(ctx context.Context, s scope.Scope, opts StoppageOptions) (_ []models.StoppageAlert, err error) {
	defer e.observe("multi_account_stoppage", time.Now(), &err)

	recentDays := orDefault(opts.RecentDays, e.cfg.OOSRecentDays)
	if recentDays <= 0 {
		return nil, models.NewInvalidParameterError("recent_days", "must be a positive day count")
	}
	minAccounts := orDefault(opts.MinAccounts, e.cfg.StoppageMinAccounts)
	if minAccounts <= 0 {
		return nil, models.NewInvalidParameterError("min_accounts", "must be a positive account count")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	horizon := database.MonthsWindow(asOf, analysisHorizonMonths)
	cutoff := database.DaysWindow(asOf, recentDays).Start

	return e.db.GetStoppageAlerts(ctx, filterFor(s), horizon, cutoff, minAccounts)
}

// EstimateOOSImpact estimates the revenue a stock-out of oosDays costs, from
// the item's average amount per actual sale day over the trailing year.
func (e *Engine) EstimateOOSImpact(ctx context.Context, itemCode string, oosDays int, asOf time.Time) (_ *models.OOSImpact, err error) {
	defer e.observe("oos_impact", time.Now(), &err)

	if itemCode == "" {
		return nil, models.NewInvalidParameterError("item_code", "must not be empty")
	}
	if oosDays <= 0 {
		return nil, models.NewInvalidParameterError("oos_days", "must be a positive day count")
	}

	w := database.MonthsWindow(database.ResolveAsOf(asOf), analysisHorizonMonths)
	dayStats, err := e.db.GetItemSaleDayStats(ctx, itemCode, w)
	if err != nil {
		return nil, err
	}

	var avgDaily float64
	if dayStats.SaleDays > 0 {
		avgDaily = dayStats.TotalAmount / float64(dayStats.SaleDays)
	}

	return &models.OOSImpact{
		ItemCode:            itemCode,
		OOSDays:             oosDays,
		AvgDailyAmount:      stats.Round(avgDaily, 2),
		EstimatedLostAmount: stats.Round(avgDaily*float64(oosDays), 2),
		AffectedAccounts:    dayStats.Accounts,
		AnnualAmount:        dayStats.TotalAmount,
	}, nil
}

// OverstockOptions parameterize OverstockRisk.
type OverstockOptions struct {
	AsOf       time.Time
	RecentDays int
}

// OverstockRisk flags accounts that loaded up and went quiet: the recent buy
// exceeds the configured multiple of the account's pro-rated run rate while
// the last purchase is at least the configured silence old. Those accounts
// sit on stock and will not reorder soon, whatever the sell-in numbers say.
func (e *Engine) OverstockRisk(ctx context.Context, opts OverstockOptions) (_ []models.OverstockAccount, err error) {
	defer e.observe("overstock_risk", time.Now(), &err)

	recentDays := orDefault(opts.RecentDays, e.cfg.OverstockRecentDays)
	if recentDays <= 0 {
		return nil, models.NewInvalidParameterError("recent_days", "must be a positive day count")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	horizon := database.MonthsWindow(asOf, analysisHorizonMonths)
	recentStart := database.DaysWindow(asOf, recentDays).Start

	rows, err := e.db.GetAccountActivityRows(ctx, filterFor(scope.Company()), horizon, recentStart)
	if err != nil {
		return nil, err
	}

	var flagged []models.OverstockAccount
	for _, row := range rows {
		activeMonths := row.ActiveMonths
		if activeMonths < 1 {
			activeMonths = 1
		}
		avgMonthly := row.TotalAmount / float64(activeMonths)
		proRated := avgMonthly * float64(recentDays) / 30.0
		if proRated <= 0 {
			continue
		}
		if row.RecentAmount <= proRated*e.cfg.OverstockLoadFactor {
			continue
		}
		if database.DaysBetween(row.LastPurchase, asOf) < e.cfg.OverstockSilenceDays {
			continue
		}
		flagged = append(flagged, models.OverstockAccount{
			Account:          row.Account,
			AvgMonthlyAmount: stats.Round(avgMonthly, 2),
			RecentAmount:     row.RecentAmount,
			LastPurchaseDate: row.LastPurchase,
			LoadIndex:        stats.Round(row.RecentAmount/proRated, 2),
		})
	}

	sort.Slice(flagged, func(i, j int) bool {
		if flagged[i].LoadIndex != flagged[j].LoadIndex {
			return flagged[i].LoadIndex > flagged[j].LoadIndex
		}
		return flagged[i].Account < flagged[j].Account
	})
	return flagged, nil
}
