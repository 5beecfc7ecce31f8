// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

// CoverageOptions parameterize CoverageByHorizons. Zero values fall back to
// the configured defaults.
type CoverageOptions struct {
	// Dimension is the coverage unit: account_name (default), channel or
	// emirate.
	Dimension string
	// AsOf anchors the trailing windows. Zero means now.
	AsOf time.Time
	// Windows lists the trailing horizons in months, strictly increasing.
	Windows []int
	// Channels narrows the fleet to these sales channels.
	Channels []string
	// Emirates narrows the fleet to these emirates.
	Emirates []string
}

// CoverageByHorizons measures distinct-buyer coverage over a ladder of
// trailing windows, e.g. 12/24/36/48 months. Each longer window contains the
// shorter ones, so coverage counts never decrease along the ladder.
func (e *Engine) CoverageByHorizons(ctx context.Context, s scope.Scope, opts CoverageOptions) (_ *models.CoverageReport, err error) {
	defer e.observe("coverage_horizons", time.Now(), &err)

	windows := opts.Windows
	if len(windows) == 0 {
		windows = e.cfg.CoverageWindows
	}
	if len(windows) == 0 {
		return nil, models.NewInvalidParameterError("windows", "at least one window is required")
	}
	for i, months := range windows {
		if months <= 0 {
			return nil, models.NewInvalidParameterError("windows", fmt.Sprintf("window %d must be a positive month count", months))
		}
		if i > 0 && months <= windows[i-1] {
			return nil, models.NewInvalidParameterError("windows", "windows must be strictly increasing")
		}
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	f := filterFor(s)
	f.Channels = opts.Channels
	f.Emirates = opts.Emirates

	records := make([]models.CoverageRecord, 0, len(windows))
	for _, months := range windows {
		w := database.MonthsWindow(asOf, months)
		agg, aggErr := e.db.GetWindowAggregate(ctx, f, w, opts.Dimension)
		if aggErr != nil {
			return nil, aggErr
		}
		records = append(records, models.CoverageRecord{
			WindowLabel:      fmt.Sprintf("%dM", months),
			Months:           months,
			StartDate:        w.Start,
			EndDate:          w.End,
			CoverageCount:    agg.CoverageCount,
			TotalAmount:      agg.TotalAmount,
			TransactionCount: agg.TransactionCount,
		})
	}

	return &models.CoverageReport{
		Scope:     s.String(),
		Dimension: dimensionLabel(opts.Dimension),
		AsOf:      asOf,
		Windows:   records,
	}, nil
}

// LossOptions parameterize CoverageLoss.
type LossOptions struct {
	Dimension        string
	AsOf             time.Time
	RecentMonths     int
	HistoricalMonths int
}

// CoverageLoss finds the dimension values that bought inside the historical
// band but not inside the recent band: the customers (or channels, or
// emirates) the scope stopped reaching. Each lost value carries its
// full-history aggregates and true last purchase date.
func (e *Engine) CoverageLoss(ctx context.Context, s scope.Scope, opts LossOptions) (_ *models.CoverageLossReport, err error) {
	defer e.observe("coverage_loss", time.Now(), &err)

	recentMonths := orDefault(opts.RecentMonths, e.cfg.LossRecentMonths)
	historicalMonths := orDefault(opts.HistoricalMonths, e.cfg.LossHistoricalMonths)
	if recentMonths <= 0 {
		return nil, models.NewInvalidParameterError("recent_months", "must be a positive month count")
	}
	if historicalMonths <= recentMonths {
		return nil, models.NewInvalidParameterError("historical_months", "must exceed recent_months")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	recent := database.MonthsWindow(asOf, recentMonths)
	historical := database.Span(database.MonthsWindow(asOf, historicalMonths).Start, recent.Start)

	records, err := e.db.GetCoverageLossRows(ctx, filterFor(s), opts.Dimension, historical, recent, asOf)
	if err != nil {
		return nil, err
	}

	var totalLost float64
	for _, rec := range records {
		totalLost += rec.HistoricalAmount
	}

	return &models.CoverageLossReport{
		Scope:            s.String(),
		Dimension:        dimensionLabel(opts.Dimension),
		AsOf:             asOf,
		RecentMonths:     recentMonths,
		HistoricalMonths: historicalMonths,
		LostCount:        len(records),
		TotalLostAmount:  totalLost,
		Accounts:         records,
	}, nil
}

// MovementOptions parameterize AccountMovement.
type MovementOptions struct {
	Dimension    string
	AsOf         time.Time
	PeriodMonths int
}

// AccountMovement counts new, lost and retained buyers between two adjacent
// periods of equal length ending at asOf.
func (e *Engine) AccountMovement(ctx context.Context, s scope.Scope, opts MovementOptions) (_ *models.AccountMovement, err error) {
	defer e.observe("account_movement", time.Now(), &err)

	period := orDefault(opts.PeriodMonths, e.cfg.MovementPeriodMonths)
	if period <= 0 {
		return nil, models.NewInvalidParameterError("period_months", "must be a positive month count")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	recent := database.MonthsWindow(asOf, period)
	previous := database.Span(database.MonthsWindow(asOf, 2*period).Start, recent.Start)

	counts, err := e.db.GetAccountMovement(ctx, filterFor(s), opts.Dimension, previous, recent)
	if err != nil {
		return nil, err
	}

	return &models.AccountMovement{
		Scope:            s.String(),
		AsOf:             asOf,
		PeriodMonths:     period,
		NewAccounts:      counts.New,
		LostAccounts:     counts.Lost,
		RetainedAccounts: counts.Retained,
	}, nil
}

// CompareOptions parameterize CompareScopes.
type CompareOptions struct {
	Dimension string
	AsOf      time.Time
	Months    int
}

// CompareScopes measures two scopes' coverage over the same window and the
// overlap between their buyer sets, via a true set intersection.
func (e *Engine) CompareScopes(ctx context.Context, a, b scope.Scope, opts CompareOptions) (_ *models.ScopeComparison, err error) {
	defer e.observe("compare_scopes", time.Now(), &err)

	months := orDefault(opts.Months, defaultCompareMonths)
	if months <= 0 {
		return nil, models.NewInvalidParameterError("months", "must be a positive month count")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	w := database.MonthsWindow(asOf, months)

	counts, err := e.db.GetScopeOverlap(ctx, filterFor(a), filterFor(b), w, opts.Dimension)
	if err != nil {
		return nil, err
	}

	return &models.ScopeComparison{
		ScopeA:     a.String(),
		ScopeB:     b.String(),
		AsOf:       asOf,
		Months:     months,
		CoverageA:  counts.CoverageA,
		CoverageB:  counts.CoverageB,
		Overlap:    counts.Overlap,
		ExclusiveA: counts.CoverageA - counts.Overlap,
		ExclusiveB: counts.CoverageB - counts.Overlap,
	}, nil
}

// dimensionLabel names the effective dimension in reports, resolving the
// empty default.
func dimensionLabel(dimension string) string {
	if dimension == "" {
		return database.DimensionAccount
	}
	return dimension
}
