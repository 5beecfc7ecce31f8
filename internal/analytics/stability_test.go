// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"fmt"
	"testing"

	"github.com/shelfwatch/shelfwatch/internal/config"
	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

func TestRunRateStability_VeryStableBrand(t *testing.T) {
	e, db := setupTestEngine(t)

	amounts := []float64{1000, 1010, 990, 1000, 1005, 995}
	var rows []sale
	for i, amount := range amounts {
		rows = append(rows, sale{date: monthsBefore(6 - i), item: "STB-1", brand: "STB",
			account: "Alpha Pharmacy", amount: amount})
	}
	insertSales(t, db, rows)

	report, err := e.RunRateStability(context.Background(), scope.Brand("STB"), StabilityOptions{AsOf: testAsOf})
	checkNoError(t, err)

	checkStringEqual(t, "Scope", report.Scope, "brand:STB")
	checkStringEqual(t, "Stability", report.Stability, models.StabilityVeryStable)
	checkFloatEqual(t, "CV", report.CV, 0.006)
	checkFloatEqual(t, "MeanMonthly", report.MeanMonthly, 1000)
	checkFloatEqual(t, "StdMonthly", report.StdMonthly, 6.45)
	checkFloatEqual(t, "MinMonthly", report.MinMonthly, 990)
	checkFloatEqual(t, "MaxMonthly", report.MaxMonthly, 1010)
	checkFloatEqual(t, "Confidence", report.Confidence, 0.5)
	checkSliceLen(t, "series", len(report.Series), 6)
}

func TestRunRateStability_UnstableBrand(t *testing.T) {
	e, db := setupTestEngine(t)

	amounts := []float64{100, 2000, 150, 1800}
	var rows []sale
	for i, amount := range amounts {
		rows = append(rows, sale{date: monthsBefore(4 - i), item: "WLD-1", brand: "WLD",
			account: "Beta Pharmacy", amount: amount})
	}
	insertSales(t, db, rows)

	report, err := e.RunRateStability(context.Background(), scope.Brand("WLD"), StabilityOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkStringEqual(t, "Stability", report.Stability, models.StabilityUnstable)
	checkTrue(t, "cv above moderate cutoff", report.CV > 0.5)
}

func TestRunRateStability_ThinSeries(t *testing.T) {
	e, db := setupTestEngine(t)

	insertSales(t, db, []sale{
		{date: monthsBefore(2), item: "THN-1", brand: "THIN", account: "Alpha Pharmacy", amount: 100},
		{date: monthsBefore(1), item: "THN-1", brand: "THIN", account: "Alpha Pharmacy", amount: 200},
	})

	report, err := e.RunRateStability(context.Background(), scope.Brand("THIN"), StabilityOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkStringEqual(t, "Stability", report.Stability, models.StabilityInsufficientData)
	checkFloatEqual(t, "Confidence", report.Confidence, 0)
	checkFloatEqual(t, "CV", report.CV, 0)
	checkSliceLen(t, "series", len(report.Series), 2)
}

func TestRunRateStability_MonthsValidation(t *testing.T) {
	e, _ := setupTestEngine(t)

	_, err := e.RunRateStability(context.Background(), scope.Company(), StabilityOptions{AsOf: testAsOf, Months: -12})
	checkError(t, err)
	checkTrue(t, "invalid parameter", models.IsInvalidParameter(err))
}

func TestStabilityTier_Boundaries(t *testing.T) {
	cfg := config.Default().Analysis

	cases := []struct {
		cv   float64
		want string
	}{
		{0.0, models.StabilityVeryStable},
		{0.149, models.StabilityVeryStable},
		{0.15, models.StabilityStable},
		{0.299, models.StabilityStable},
		{0.30, models.StabilityModerate},
		{0.499, models.StabilityModerate},
		{0.50, models.StabilityUnstable},
		{2.0, models.StabilityUnstable},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("cv_%v", tc.cv), func(t *testing.T) {
			checkStringEqual(t, "tier", stabilityTier(tc.cv, cfg), tc.want)
		})
	}
}
