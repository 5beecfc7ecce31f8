// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

// cycleAmount is the Oct-peaked annual shape used by the scan scenarios.
func cycleAmount(month time.Month, scale float64) float64 {
	byMonth := map[time.Month]float64{
		time.January: 400, time.February: 300, time.March: 200,
		time.April: 100, time.May: 200, time.June: 300,
		time.July: 400, time.August: 500, time.September: 600,
		time.October: 700, time.November: 600, time.December: 500,
	}
	return byMonth[month] * scale
}

// insertCycleRows writes one row per month over the trailing two years with
// the annual cycle shape.
func insertCycleRows(t *testing.T, db *database.DB, item string, scale float64) {
	t.Helper()
	var rows []sale
	for m := 24; m >= 1; m-- {
		date := monthsBefore(m)
		rows = append(rows, sale{
			date: date, item: item, brand: "DUP", account: "Alpha Pharmacy",
			amount: cycleAmount(date.Month(), scale),
		})
	}
	insertSales(t, db, rows)
}

func TestSeasonalScan_FindsAnnualCycle(t *testing.T) {
	e, db := setupTestEngine(t)

	// SEAS-1 carries the cycle at 10x scale: 96,000 over two years,
	// comfortably over the 50,000 floor.
	insertCycleRows(t, db, "SEAS-1", 10)
	// FLAT-1 clears the floor but has no shape.
	var flat []sale
	for m := 24; m >= 1; m-- {
		flat = append(flat, sale{date: monthsBefore(m), item: "FLAT-1", brand: "DUP",
			account: "Beta Pharmacy", amount: 4000})
	}
	insertSales(t, db, flat)
	// SMALL-1 has the shape but misses the floor.
	insertCycleRows(t, db, "SMALL-1", 1)

	seasonal, err := e.SeasonalScan(context.Background(), scope.Company(), SeasonalScanOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkSliceLen(t, "seasonal items", len(seasonal), 1)

	got := seasonal[0]
	checkStringEqual(t, "ItemCode", got.ItemCode, "SEAS-1")
	checkStringEqual(t, "Pattern", got.Pattern, "Seasonal")
	checkFloatEqual(t, "TotalAmount", got.TotalAmount, 96000)
	checkIntEqual(t, "SeasonalLag", int64(got.SeasonalLag), 12)
	checkSliceLen(t, "PeakMonths", len(got.PeakMonths), 3)
	checkStringEqual(t, "PeakMonths[0]", got.PeakMonths[0], "Oct")
	checkFloatEqual(t, "CV", got.CV, 0.445)
}

func TestSeasonalScan_EmptyScope(t *testing.T) {
	e, _ := setupTestEngine(t)

	seasonal, err := e.SeasonalScan(context.Background(), scope.Company(), SeasonalScanOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkSliceEmpty(t, "seasonal items", len(seasonal))
}

func TestSeasonalScan_Idempotent(t *testing.T) {
	e, db := setupTestEngine(t)
	insertCycleRows(t, db, "SEAS-1", 10)

	ctx := context.Background()
	first, err := e.SeasonalScan(ctx, scope.Company(), SeasonalScanOptions{AsOf: testAsOf})
	checkNoError(t, err)
	second, err := e.SeasonalScan(ctx, scope.Company(), SeasonalScanOptions{AsOf: testAsOf})
	checkNoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated scans over unchanged data should be identical")
	}
}

func TestAnomalyScan_SpikeAndDropEvents(t *testing.T) {
	e, db := setupTestEngine(t)

	var rows []sale
	// ANOM-1 spikes in its last month, ANOM-2 collapses.
	for m := 8; m >= 2; m-- {
		rows = append(rows, sale{date: monthsBefore(m), item: "ANOM-1", brand: "DUP",
			account: "Alpha Pharmacy", amount: 1000})
		rows = append(rows, sale{date: monthsBefore(m), item: "ANOM-2", brand: "DUP",
			account: "Alpha Pharmacy", amount: 1000})
	}
	rows = append(rows, sale{date: monthsBefore(1), item: "ANOM-1", brand: "DUP",
		account: "Alpha Pharmacy", amount: 10000})
	rows = append(rows, sale{date: monthsBefore(1), item: "ANOM-2", brand: "DUP",
		account: "Alpha Pharmacy", amount: 100})
	// QUIET-1 is flat and must produce nothing.
	for m := 5; m >= 1; m-- {
		rows = append(rows, sale{date: monthsBefore(m), item: "QUIET-1", brand: "DUP",
			account: "Beta Pharmacy", amount: 500})
	}
	insertSales(t, db, rows)

	events, err := e.AnomalyScan(context.Background(), scope.Company(), AnomalyScanOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkSliceLen(t, "events", len(events), 2)

	spike := events[0]
	checkStringEqual(t, "spike ItemCode", spike.ItemCode, "ANOM-1")
	checkStringEqual(t, "spike Month", spike.Month, monthKey(monthsBefore(1)))
	checkStringEqual(t, "spike Kind", spike.Kind, "Spike")
	checkFloatEqual(t, "spike Amount", spike.Amount, 10000)
	checkFloatEqual(t, "spike ZScore", spike.ZScore, 2.65)
	checkFloatEqual(t, "spike DeviationPct", spike.DeviationPct, 370.59)

	drop := events[1]
	checkStringEqual(t, "drop ItemCode", drop.ItemCode, "ANOM-2")
	checkStringEqual(t, "drop Kind", drop.Kind, "Drop")
	checkFloatEqual(t, "drop DeviationPct", drop.DeviationPct, -88.73)
}

func TestAnomalyScan_ShortSeriesSkipped(t *testing.T) {
	e, db := setupTestEngine(t)

	// Two active months is below the classification minimum, however
	// extreme the values look.
	insertSales(t, db, []sale{
		{date: monthsBefore(2), item: "SHORT-1", brand: "DUP", account: "Alpha Pharmacy", amount: 10},
		{date: monthsBefore(1), item: "SHORT-1", brand: "DUP", account: "Alpha Pharmacy", amount: 99999},
	})

	events, err := e.AnomalyScan(context.Background(), scope.Company(), AnomalyScanOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkSliceEmpty(t, "events", len(events))
}

func TestAnomalyScan_MonthsValidation(t *testing.T) {
	e, _ := setupTestEngine(t)

	_, err := e.AnomalyScan(context.Background(), scope.Company(), AnomalyScanOptions{AsOf: testAsOf, Months: -6})
	checkError(t, err)
}

func TestSeasonalScan_ScopeNarrows(t *testing.T) {
	e, db := setupTestEngine(t)

	insertCycleRows(t, db, "SEAS-1", 10)

	seasonal, err := e.SeasonalScan(context.Background(), scope.Brand("BAY"), SeasonalScanOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkSliceEmpty(t, "seasonal items under other brand", len(seasonal))
}
