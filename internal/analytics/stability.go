// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/config"
	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
	"github.com/shelfwatch/shelfwatch/internal/stats"
)

// StabilityOptions parameterize RunRateStability.
type StabilityOptions struct {
	AsOf   time.Time
	Months int
}

// RunRateStability grades how steady a scope's monthly run rate is, from
// the coefficient of variation of its series. Fewer than three active
// months grades as Insufficient Data with zero confidence.
func (e *Engine) RunRateStability(ctx context.Context, s scope.Scope, opts StabilityOptions) (_ *models.StabilityReport, err error) {
	defer e.observe("run_rate_stability", time.Now(), &err)

	months := orDefault(opts.Months, e.cfg.PatternMonths)
	if months <= 0 {
		return nil, models.NewInvalidParameterError("months", "must be a positive month count")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	w := database.MonthsWindow(asOf, months)

	series, err := e.db.GetMonthlySeries(ctx, filterFor(s), w)
	if err != nil {
		return nil, err
	}
	if series == nil {
		series = []models.MonthPoint{}
	}

	report := &models.StabilityReport{
		Scope:  s.String(),
		Series: series,
	}
	if len(series) < minSeriesPoints {
		report.Stability = models.StabilityInsufficientData
		return report, nil
	}

	amounts := make([]float64, len(series))
	for i, point := range series {
		amounts[i] = point.Amount
	}

	cv := stats.CV(amounts)
	report.CV = stats.Round(cv, 3)
	report.MeanMonthly = stats.Round(stats.Mean(amounts), 2)
	report.StdMonthly = stats.Round(stats.StdDev(amounts), 2)
	report.MinMonthly = stats.Round(stats.Min(amounts), 2)
	report.MaxMonthly = stats.Round(stats.Max(amounts), 2)
	report.Confidence = seriesConfidence(len(series))
	report.Stability = stabilityTier(cv, e.cfg)

	return report, nil
}

// stabilityTier buckets a coefficient of variation into a stability grade.
func stabilityTier(cv float64, cfg config.AnalysisConfig) string {
	switch {
	case cv < cfg.StabilityVeryStable:
		return models.StabilityVeryStable
	case cv < cfg.StabilityStable:
		return models.StabilityStable
	case cv < cfg.StabilityModerate:
		return models.StabilityModerate
	default:
		return models.StabilityUnstable
	}
}
