// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/models"
)

// seriesFrom builds a monthly series starting at the given month, one point
// per amount.
func seriesFrom(start time.Time, amounts []float64) []models.MonthPoint {
	series := make([]models.MonthPoint, len(amounts))
	for i, amount := range amounts {
		series[i] = models.MonthPoint{
			Month:  start.AddDate(0, i, 0).Format("2006-01"),
			Amount: amount,
		}
	}
	return series
}

// annualCycle is a two-year series with a yearly peak in October. Lag-3 and
// lag-6 autocorrelation fail on it while lag-12 is a perfect match.
func annualCycle(scale float64) []models.MonthPoint {
	byMonth := map[time.Month]float64{
		time.January: 400, time.February: 300, time.March: 200,
		time.April: 100, time.May: 200, time.June: 300,
		time.July: 400, time.August: 500, time.September: 600,
		time.October: 700, time.November: 600, time.December: 500,
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make([]models.MonthPoint, 24)
	for i := range series {
		at := start.AddDate(0, i, 0)
		series[i] = models.MonthPoint{
			Month:  at.Format("2006-01"),
			Amount: byMonth[at.Month()] * scale,
		}
	}
	return series
}

func TestClassifySeries_FewerThanThreePoints(t *testing.T) {
	e := bareEngine()

	c := e.classifySeries("ITEM-1", seriesFrom(monthsBefore(2), []float64{100, 200}))
	checkStringEqual(t, "Pattern", c.Pattern, models.PatternInsufficientData)
	checkStringEqual(t, "PlanningImplication", c.PlanningImplication, "Need more history for analysis.")
	checkFloatEqual(t, "Confidence", c.Confidence, 0)
	checkStringEqual(t, "TrendDirection", c.TrendDirection, "none")
	checkSliceEmpty(t, "PeakMonths", len(c.PeakMonths))
}

func TestClassifySeries_NilSeries(t *testing.T) {
	e := bareEngine()

	c := e.classifySeries("ITEM-1", nil)
	checkStringEqual(t, "Pattern", c.Pattern, models.PatternInsufficientData)
	if c.Series == nil {
		t.Error("series should be materialized as empty, not nil")
	}
}

func TestClassifySeries_FlatSeriesIsStable(t *testing.T) {
	e := bareEngine()

	amounts := make([]float64, 12)
	for i := range amounts {
		amounts[i] = 100
	}
	c := e.classifySeries("FLAT-1", seriesFrom(monthsBefore(12), amounts))

	checkStringEqual(t, "Pattern", c.Pattern, models.PatternStable)
	checkStringEqual(t, "PlanningImplication", c.PlanningImplication, "Predictable demand. Automate replenishment.")
	checkTrue(t, "no anomalies", !c.HasAnomalies)
	checkTrue(t, "not seasonal", !c.IsSeasonal)
	checkTrue(t, "no trend", !c.HasTrend)
	checkFloatEqual(t, "CV", c.CV, 0)
	checkFloatEqual(t, "MeanAmount", c.MeanAmount, 100)
	checkFloatEqual(t, "StdDev", c.StdDev, 0)
	checkFloatEqual(t, "Confidence", c.Confidence, 1)
}

func TestClassifySeries_NearFlatSeriesIsStable(t *testing.T) {
	e := bareEngine()

	amounts := []float64{100, 105, 95, 100, 102, 98, 101, 99, 100, 103, 97, 100}
	c := e.classifySeries("STB-1", seriesFrom(monthsBefore(12), amounts))

	checkStringEqual(t, "Pattern", c.Pattern, models.PatternStable)
	checkFloatEqual(t, "MeanAmount", c.MeanAmount, 100)
	checkTrue(t, "cv below stable cutoff", c.CV < 0.2)
}

func TestClassifySeries_SingleOutlierIsStrangeSpike(t *testing.T) {
	e := bareEngine()

	amounts := []float64{100, 100, 100, 100, 100, 100, 100, 1000}
	c := e.classifySeries("SPK-1", seriesFrom(monthsBefore(8), amounts))

	checkStringEqual(t, "Pattern", c.Pattern, models.PatternStrangeSpike)
	checkStringEqual(t, "PlanningImplication", c.PlanningImplication, "Investigate cause (Promo? OOS?). Exclude from forecast.")
	checkTrue(t, "HasAnomalies", c.HasAnomalies)
	checkIntEqual(t, "AnomalyCount", int64(c.AnomalyCount), 1)
	checkFloatEqual(t, "Confidence", c.Confidence, 0.67)
}

func TestClassifySeries_SingleCollapseIsStrangeDrop(t *testing.T) {
	e := bareEngine()

	amounts := []float64{1000, 1000, 1000, 1000, 1000, 1000, 1000, 100}
	c := e.classifySeries("DRP-1", seriesFrom(monthsBefore(8), amounts))

	checkStringEqual(t, "Pattern", c.Pattern, models.PatternStrangeDrop)
	checkTrue(t, "HasAnomalies", c.HasAnomalies)
}

func TestClassifySeries_AnnualCycleIsSeasonal(t *testing.T) {
	e := bareEngine()

	c := e.classifySeries("SEA-1", annualCycle(1))

	checkStringEqual(t, "Pattern", c.Pattern, models.PatternSeasonal)
	checkTrue(t, "IsSeasonal", c.IsSeasonal)
	checkIntEqual(t, "SeasonalLag", int64(c.SeasonalLag), 12)
	checkTrue(t, "no anomalies", !c.HasAnomalies)
	checkFloatEqual(t, "CV", c.CV, 0.445)
	checkFloatEqual(t, "MeanAmount", c.MeanAmount, 400)
	checkFloatEqual(t, "Confidence", c.Confidence, 1)
}

func TestClassifySeries_SeasonalPeakMonths(t *testing.T) {
	e := bareEngine()

	c := e.classifySeries("SEA-1", annualCycle(1))

	checkSliceLen(t, "PeakMonths", len(c.PeakMonths), 3)
	checkStringEqual(t, "PeakMonths[0]", c.PeakMonths[0], "Oct")
	// Sep and Nov tie on average; calendar order breaks the tie.
	checkStringEqual(t, "PeakMonths[1]", c.PeakMonths[1], "Sep")
	checkStringEqual(t, "PeakMonths[2]", c.PeakMonths[2], "Nov")
	checkStringEqual(t, "PlanningImplication", c.PlanningImplication, "Stock up 2 months prior to peak (Oct).")
}

func TestClassifySeries_SeasonalBeatsVariationBands(t *testing.T) {
	e := bareEngine()

	// The cycle's CV sits in the moderate band; the seasonal label must
	// still win.
	c := e.classifySeries("SEA-1", annualCycle(1))
	checkTrue(t, "cv in moderate band", c.CV > 0.2 && c.CV < 0.5)
	checkStringEqual(t, "Pattern", c.Pattern, models.PatternSeasonal)
}

func TestClassifySeries_HighDispersionIsFluctuating(t *testing.T) {
	e := bareEngine()

	amounts := []float64{100, 900, 150, 800, 120, 850}
	c := e.classifySeries("FLX-1", seriesFrom(monthsBefore(6), amounts))

	checkStringEqual(t, "Pattern", c.Pattern, models.PatternFluctuating)
	checkStringEqual(t, "PlanningImplication", c.PlanningImplication, "Maintain higher safety stock to buffer volatility.")
	checkTrue(t, "cv above fluctuating cutoff", c.CV > 0.5)
	checkFloatEqual(t, "Confidence", c.Confidence, 0.5)
}

func TestClassifySeries_MidDispersionIsModerateVariation(t *testing.T) {
	e := bareEngine()

	amounts := []float64{100, 150, 70, 120, 90}
	c := e.classifySeries("MOD-1", seriesFrom(monthsBefore(5), amounts))

	checkStringEqual(t, "Pattern", c.Pattern, models.PatternModerateVariation)
	checkStringEqual(t, "PlanningImplication", c.PlanningImplication, "Monitor variance.")
	checkTrue(t, "cv in moderate band", c.CV > 0.2 && c.CV < 0.5)
	checkFloatEqual(t, "Confidence", c.Confidence, 0.42)
}

func TestClassifySeries_TrendDirection(t *testing.T) {
	e := bareEngine()

	rising := e.classifySeries("UP-1", seriesFrom(monthsBefore(8), []float64{100, 200, 300, 400, 500, 600, 700, 800}))
	checkTrue(t, "rising HasTrend", rising.HasTrend)
	checkStringEqual(t, "rising TrendDirection", rising.TrendDirection, "increasing")

	falling := e.classifySeries("DN-1", seriesFrom(monthsBefore(8), []float64{800, 700, 600, 500, 400, 300, 200, 100}))
	checkTrue(t, "falling HasTrend", falling.HasTrend)
	checkStringEqual(t, "falling TrendDirection", falling.TrendDirection, "decreasing")

	flat := e.classifySeries("FL-1", seriesFrom(monthsBefore(8), []float64{100, 100, 100, 100, 100, 100, 100, 100}))
	checkTrue(t, "flat has no trend", !flat.HasTrend)
	checkStringEqual(t, "flat TrendDirection", flat.TrendDirection, "none")

	short := e.classifySeries("SH-1", seriesFrom(monthsBefore(4), []float64{100, 200, 300, 400}))
	checkStringEqual(t, "short TrendDirection", short.TrendDirection, "none")
}

func TestClassifySeries_ShortSeriesSkipsSeasonality(t *testing.T) {
	e := bareEngine()

	// Eleven points never test seasonal, whatever their shape.
	amounts := []float64{100, 700, 100, 700, 100, 700, 100, 700, 100, 700, 100}
	c := e.classifySeries("SS-1", seriesFrom(monthsBefore(11), amounts))
	checkTrue(t, "not seasonal", !c.IsSeasonal)
	checkIntEqual(t, "SeasonalLag", int64(c.SeasonalLag), 0)
}

func TestSeriesConfidence_Ladder(t *testing.T) {
	cases := []struct {
		points int
		want   float64
	}{
		{3, 0.25},
		{5, 0.42},
		{6, 0.5},
		{11, 0.92},
		{12, 1},
		{24, 1},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_points", tc.points), func(t *testing.T) {
			checkFloatEqual(t, "confidence", seriesConfidence(tc.points), tc.want)
		})
	}
}

func TestPeakCalendarMonths_SkipsMalformedKeys(t *testing.T) {
	series := []models.MonthPoint{
		{Month: "2025-10", Amount: 700},
		{Month: "garbage", Amount: 9000},
		{Month: "2025-11", Amount: 600},
	}
	peaks := peakCalendarMonths(series)
	checkSliceLen(t, "peaks", len(peaks), 2)
	checkStringEqual(t, "peaks[0]", peaks[0], "Oct")
	checkStringEqual(t, "peaks[1]", peaks[1], "Nov")
}
