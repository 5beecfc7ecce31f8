// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
	"github.com/shelfwatch/shelfwatch/internal/stats"
)

// seasonalLags are the autocorrelation lags probed for seasonality, in
// order; the first lag that correlates wins.
var seasonalLags = []int{3, 6, 12}

// minSeriesPoints is the fewest active months a series needs before any
// classification is attempted.
const minSeriesPoints = 3

// PatternOptions parameterize ClassifyPattern.
type PatternOptions struct {
	AsOf   time.Time
	Months int
}

// ClassifyPattern labels one item's monthly demand pattern over the trailing
// opts.Months: Stable, Seasonal, Fluctuating, Moderate Variation or Strange
// (Spike/Drop). A series under three active months classifies as
// Insufficient Data with zero confidence; thin data is a value here, not an
// error.
func (e *Engine) ClassifyPattern(ctx context.Context, itemCode string, opts PatternOptions) (_ *models.PatternClassification, err error) {
	defer e.observe("classify_pattern", time.Now(), &err)

	if itemCode == "" {
		return nil, models.NewInvalidParameterError("item_code", "must not be empty")
	}
	months := orDefault(opts.Months, e.cfg.PatternMonths)
	if months <= 0 {
		return nil, models.NewInvalidParameterError("months", "must be a positive month count")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	w := database.MonthsWindow(asOf, months)

	series, err := e.db.GetMonthlySeries(ctx, filterFor(scope.Item(itemCode)), w)
	if err != nil {
		return nil, err
	}
	return e.classifySeries(itemCode, series), nil
}

// classifySeries runs the full pattern classification over an already-loaded
// monthly series. Pure; the fleet scans call it from worker goroutines.
func (e *Engine) classifySeries(itemCode string, series []models.MonthPoint) *models.PatternClassification {
	if series == nil {
		series = []models.MonthPoint{}
	}

	c := &models.PatternClassification{
		ItemCode:       itemCode,
		TrendDirection: "none",
		PeakMonths:     []string{},
		Series:         series,
	}

	n := len(series)
	if n < minSeriesPoints {
		c.Pattern = models.PatternInsufficientData
		c.PlanningImplication = "Need more history for analysis."
		return c
	}

	amounts := make([]float64, n)
	for i, point := range series {
		amounts[i] = point.Amount
	}

	mean := stats.Mean(amounts)
	std := stats.StdDev(amounts)
	cv := stats.CV(amounts)
	c.MeanAmount = stats.Round(mean, 2)
	c.StdDev = stats.Round(std, 2)
	c.CV = stats.Round(cv, 3)
	c.Confidence = seriesConfidence(n)

	// Seasonality: correlate the first lag months against the last lag
	// months. Only meaningful with a full year of points.
	if n >= 12 {
		for _, lag := range seasonalLags {
			if n < lag*2 {
				continue
			}
			if stats.Pearson(amounts[:lag], amounts[n-lag:]) > e.cfg.SeasonalCorrelation {
				c.IsSeasonal = true
				c.SeasonalLag = lag
				break
			}
		}
	}

	zScores := stats.ZScores(amounts)
	var anomalous []float64
	for i, z := range zScores {
		if math.Abs(z) > e.cfg.AnomalyZScore {
			anomalous = append(anomalous, amounts[i])
		}
	}
	c.HasAnomalies = len(anomalous) > 0
	c.AnomalyCount = len(anomalous)

	if n >= 6 {
		fit := stats.FitTrend(amounts)
		c.HasTrend = math.Abs(fit.R) > e.cfg.TrendCorrelation && fit.P < e.cfg.TrendPValue
		switch {
		case fit.Slope > 0:
			c.TrendDirection = "increasing"
		case fit.Slope < 0:
			c.TrendDirection = "decreasing"
		}
	}

	if c.IsSeasonal && n >= 12 {
		c.PeakMonths = peakCalendarMonths(series)
	}

	// Label precedence: anomalies trump everything, then seasonality,
	// then the variation bands.
	switch {
	case c.HasAnomalies:
		if stats.Mean(anomalous) > mean {
			c.Pattern = models.PatternStrangeSpike
		} else {
			c.Pattern = models.PatternStrangeDrop
		}
	case c.IsSeasonal:
		c.Pattern = models.PatternSeasonal
	case cv < e.cfg.CVStable:
		c.Pattern = models.PatternStable
	case cv > e.cfg.CVFluctuating:
		c.Pattern = models.PatternFluctuating
	default:
		c.Pattern = models.PatternModerateVariation
	}

	c.PlanningImplication = planningImplication(c.Pattern, c.PeakMonths)
	return c
}

// planningImplication maps a pattern label to its replenishment advice.
func planningImplication(pattern string, peakMonths []string) string {
	switch pattern {
	case models.PatternStable:
		return "Predictable demand. Automate replenishment."
	case models.PatternSeasonal:
		peak := ""
		if len(peakMonths) > 0 {
			peak = peakMonths[0]
		}
		return fmt.Sprintf("Stock up 2 months prior to peak (%s).", peak)
	case models.PatternFluctuating:
		return "Maintain higher safety stock to buffer volatility."
	case models.PatternStrangeSpike, models.PatternStrangeDrop:
		return "Investigate cause (Promo? OOS?). Exclude from forecast."
	default:
		return "Monitor variance."
	}
}

// peakCalendarMonths averages the series per calendar month and returns the
// top three as 3-letter names, highest first. Ties resolve in calendar
// order.
func peakCalendarMonths(series []models.MonthPoint) []string {
	var sums [13]float64
	var counts [13]int
	for _, point := range series {
		if len(point.Month) != 7 {
			continue
		}
		m, err := strconv.Atoi(point.Month[5:7])
		if err != nil || m < 1 || m > 12 {
			continue
		}
		sums[m] += point.Amount
		counts[m]++
	}

	type monthAvg struct {
		month int
		avg   float64
	}
	averages := make([]monthAvg, 0, 12)
	for m := 1; m <= 12; m++ {
		if counts[m] == 0 {
			continue
		}
		averages = append(averages, monthAvg{month: m, avg: sums[m] / float64(counts[m])})
	}
	sort.SliceStable(averages, func(i, j int) bool {
		return averages[i].avg > averages[j].avg
	})

	peaks := make([]string, 0, 3)
	for _, entry := range averages {
		if len(peaks) == 3 {
			break
		}
		peaks = append(peaks, time.Month(entry.month).String()[:3])
	}
	return peaks
}

// seriesConfidence grades classification confidence by series length: a full
// year of points is full confidence.
func seriesConfidence(points int) float64 {
	if points >= 12 {
		return 1
	}
	return stats.Round(float64(points)/12, 2)
}
