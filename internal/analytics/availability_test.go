// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"reflect"
	"testing"

	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

func oosScenario(t *testing.T) (*Engine, context.Context) {
	t.Helper()
	e, db := setupTestEngine(t)

	var rows []sale
	// OOS-HIGH: 11k of history spread over 11 months, silent for the
	// whole recent band.
	for m := 2; m <= 12; m++ {
		rows = append(rows, sale{
			date: monthsBefore(m), item: "OOS-HIGH", desc: "High Risk Syrup", brand: "DUP",
			account: "Alpha Pharmacy", amount: 1000,
		})
	}
	// OOS-MED: same history, trickle of recent sales below the ratio.
	for m := 2; m <= 12; m++ {
		rows = append(rows, sale{
			date: monthsBefore(m), item: "OOS-MED", desc: "Medium Risk Tabs", brand: "DUP",
			account: "Beta Pharmacy", amount: 1000,
		})
	}
	rows = append(rows, sale{date: daysBefore(10), item: "OOS-MED", desc: "Medium Risk Tabs", brand: "DUP",
		account: "Beta Pharmacy", amount: 100})
	// OOS-OK: healthy recent run rate, must not be flagged.
	for m := 2; m <= 12; m++ {
		rows = append(rows, sale{
			date: monthsBefore(m), item: "OOS-OK", desc: "Healthy Drops", brand: "DUP",
			account: "Gamma Market", amount: 1000,
		})
	}
	rows = append(rows, sale{date: daysBefore(10), item: "OOS-OK", desc: "Healthy Drops", brand: "DUP",
		account: "Gamma Market", amount: 800})
	// OOS-SMALL: collapsed but below the materiality floor.
	rows = append(rows, sale{date: monthsBefore(6), item: "OOS-SMALL", desc: "Small Fry", brand: "DUP",
		account: "Delta Hospital", amount: 5000})
	insertSales(t, db, rows)

	return e, context.Background()
}

func TestDetectOOS_ZeroRecentGradesHigh(t *testing.T) {
	e, ctx := oosScenario(t)

	report, err := e.DetectOOS(ctx, scope.Company(), OOSOptions{AsOf: testAsOf})
	checkNoError(t, err)

	byItem := make(map[string]models.OOSCandidate, len(report.Candidates))
	for _, c := range report.Candidates {
		byItem[c.ItemCode] = c
	}

	high, ok := byItem["OOS-HIGH"]
	checkTrue(t, "OOS-HIGH flagged", ok)
	if high.RiskLevel != models.RiskHigh {
		t.Errorf("expected High risk, got %s", high.RiskLevel)
	}
	checkStringEqual(t, "ForecastSuggestion", high.ForecastSuggestion, "Increase forecast by 20% to recover lost sales")
	checkFloatEqual(t, "HistoricalAmount", high.HistoricalAmount, 11000)
	checkFloatEqual(t, "AvgMonthlyAmount", high.AvgMonthlyAmount, 1000)
	checkFloatEqual(t, "RecentAmount", high.RecentAmount, 0)
	// Last sale on 2026-01-01, anchor 2026-03-01.
	checkIntEqual(t, "DaysSinceLastSale", int64(high.DaysSinceLastSale), 59)
}

func TestDetectOOS_TrickleGradesMedium(t *testing.T) {
	e, ctx := oosScenario(t)

	report, err := e.DetectOOS(ctx, scope.Company(), OOSOptions{AsOf: testAsOf})
	checkNoError(t, err)

	for _, c := range report.Candidates {
		if c.ItemCode != "OOS-MED" {
			continue
		}
		if c.RiskLevel != models.RiskMedium {
			t.Errorf("expected Medium risk, got %s", c.RiskLevel)
		}
		checkStringEqual(t, "ForecastSuggestion", c.ForecastSuggestion, "Review stock levels and pending orders")
		checkFloatEqual(t, "RecentAmount", c.RecentAmount, 100)
		return
	}
	t.Fatal("OOS-MED should be a candidate")
}

func TestDetectOOS_HealthyRunRateNotFlagged(t *testing.T) {
	e, ctx := oosScenario(t)

	report, err := e.DetectOOS(ctx, scope.Company(), OOSOptions{AsOf: testAsOf})
	checkNoError(t, err)

	// 800 recent against a 1000 monthly run rate sits far above the 0.3
	// ratio; a slow month is not a stock-out.
	for _, c := range report.Candidates {
		if c.ItemCode == "OOS-OK" {
			t.Errorf("OOS-OK flagged with recent amount %v", c.RecentAmount)
		}
		if c.ItemCode == "OOS-SMALL" {
			t.Error("OOS-SMALL is below the materiality floor and should be absent")
		}
	}
}

func TestDetectOOS_MinHistoricalOverride(t *testing.T) {
	e, ctx := oosScenario(t)

	report, err := e.DetectOOS(ctx, scope.Company(), OOSOptions{AsOf: testAsOf, MinHistorical: 1000})
	checkNoError(t, err)

	found := false
	for _, c := range report.Candidates {
		if c.ItemCode == "OOS-SMALL" {
			found = true
		}
	}
	checkTrue(t, "OOS-SMALL flagged under lowered floor", found)
	checkFloatEqual(t, "MinHistorical echoed", report.MinHistorical, 1000)
}

func TestDetectOOS_Idempotent(t *testing.T) {
	e, ctx := oosScenario(t)

	first, err := e.DetectOOS(ctx, scope.Company(), OOSOptions{AsOf: testAsOf})
	checkNoError(t, err)
	second, err := e.DetectOOS(ctx, scope.Company(), OOSOptions{AsOf: testAsOf})
	checkNoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated detection over unchanged data should be identical")
	}
}

func TestDetectOOS_RecentDaysValidation(t *testing.T) {
	e, _ := setupTestEngine(t)
	ctx := context.Background()

	_, err := e.DetectOOS(ctx, scope.Company(), OOSOptions{AsOf: testAsOf, RecentDays: -1})
	checkError(t, err)
	checkTrue(t, "invalid parameter", models.IsInvalidParameter(err))

	// A full year of "recent" leaves no historical band to compare against.
	_, err = e.DetectOOS(ctx, scope.Company(), OOSOptions{AsOf: testAsOf, RecentDays: 365})
	checkError(t, err)
	checkTrue(t, "invalid parameter", models.IsInvalidParameter(err))
}

func TestChannelAvailability_FlagsDarkChannel(t *testing.T) {
	e, db := setupTestEngine(t)

	insertSales(t, db, []sale{
		{date: monthsBefore(3), item: "CH-1", brand: "DUP", account: "Alpha Pharmacy", channel: "Pharmacy", amount: 600},
		{date: daysBefore(5), item: "CH-1", brand: "DUP", account: "Alpha Pharmacy", channel: "Pharmacy", amount: 100},
		{date: monthsBefore(4), item: "CH-1", brand: "DUP", account: "Delta Hospital", channel: "Hospital", amount: 400},
		// Supermarket only started selling recently: no history, no verdict.
		{date: daysBefore(3), item: "CH-1", brand: "DUP", account: "Gamma Market", channel: "Supermarket", amount: 50},
	})

	channels, err := e.ChannelAvailability(context.Background(), "CH-1", ChannelOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkSliceLen(t, "channels", len(channels), 2)

	checkStringEqual(t, "channels[0].Channel", channels[0].Channel, "Pharmacy")
	checkTrue(t, "pharmacy healthy", !channels[0].OOSRisk)
	checkFloatEqual(t, "pharmacy DropPct", channels[0].DropPct, 83.33)

	checkStringEqual(t, "channels[1].Channel", channels[1].Channel, "Hospital")
	checkTrue(t, "hospital dark", channels[1].OOSRisk)
	checkFloatEqual(t, "hospital DropPct", channels[1].DropPct, 100)
}

func TestChannelAvailability_RequiresItem(t *testing.T) {
	e, _ := setupTestEngine(t)

	_, err := e.ChannelAvailability(context.Background(), "", ChannelOptions{AsOf: testAsOf})
	checkError(t, err)
	checkTrue(t, "invalid parameter", models.IsInvalidParameter(err))
}

func TestMultiAccountStoppage_DefaultThreshold(t *testing.T) {
	e, db := setupTestEngine(t)

	// Five accounts stopped on STOP-1; four on STOP-2. Only the first
	// clears the default threshold of five.
	var rows []sale
	accounts := []string{"P", "Q", "R", "S", "T"}
	for _, acc := range accounts {
		rows = append(rows, sale{date: daysBefore(50), item: "STOP-1", brand: "DUP",
			account: acc + " Pharmacy", amount: 200})
	}
	for _, acc := range accounts[:4] {
		rows = append(rows, sale{date: daysBefore(50), item: "STOP-2", brand: "DUP",
			account: acc + " Pharmacy", amount: 200})
	}
	insertSales(t, db, rows)

	alerts, err := e.MultiAccountStoppage(context.Background(), scope.Company(), StoppageOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkSliceLen(t, "alerts", len(alerts), 1)
	checkStringEqual(t, "ItemCode", alerts[0].ItemCode, "STOP-1")
	checkIntEqual(t, "StoppedAccounts", alerts[0].StoppedAccounts, 5)
}

func TestEstimateOOSImpact_PerSaleDayAverage(t *testing.T) {
	e, db := setupTestEngine(t)

	// Two distinct sale days, 700 total: 350 per day.
	insertSales(t, db, []sale{
		{date: daysBefore(100), item: "IMP-1", brand: "DUP", account: "Alpha Pharmacy", amount: 400},
		{date: daysBefore(50), item: "IMP-1", brand: "DUP", account: "Alpha Pharmacy", amount: 200},
		{date: daysBefore(50), item: "IMP-1", brand: "DUP", account: "Beta Pharmacy", amount: 100},
	})

	impact, err := e.EstimateOOSImpact(context.Background(), "IMP-1", 7, testAsOf)
	checkNoError(t, err)
	checkFloatEqual(t, "AvgDailyAmount", impact.AvgDailyAmount, 350)
	checkFloatEqual(t, "EstimatedLostAmount", impact.EstimatedLostAmount, 2450)
	checkFloatEqual(t, "AnnualAmount", impact.AnnualAmount, 700)
	checkIntEqual(t, "AffectedAccounts", impact.AffectedAccounts, 2)
	checkIntEqual(t, "OOSDays", int64(impact.OOSDays), 7)
}

func TestEstimateOOSImpact_NoSalesYieldsZero(t *testing.T) {
	e, _ := setupTestEngine(t)

	impact, err := e.EstimateOOSImpact(context.Background(), "GHOST-1", 14, testAsOf)
	checkNoError(t, err)
	checkFloatEqual(t, "AvgDailyAmount", impact.AvgDailyAmount, 0)
	checkFloatEqual(t, "EstimatedLostAmount", impact.EstimatedLostAmount, 0)
}

func TestEstimateOOSImpact_Validation(t *testing.T) {
	e, _ := setupTestEngine(t)
	ctx := context.Background()

	_, err := e.EstimateOOSImpact(ctx, "", 7, testAsOf)
	checkError(t, err)
	_, err = e.EstimateOOSImpact(ctx, "IMP-1", 0, testAsOf)
	checkError(t, err)
}

func TestOverstockRisk_FlagsLoadedSilentAccount(t *testing.T) {
	e, db := setupTestEngine(t)

	var rows []sale
	// Loader: steady 200/month for nine months, then a 3000 spike two
	// months ago and silence since.
	for m := 4; m <= 12; m++ {
		rows = append(rows, sale{date: monthsBefore(m), item: "ITEM-A", brand: "DUP",
			account: "Loader", amount: 200})
	}
	rows = append(rows, sale{date: daysBefore(60), item: "ITEM-A", brand: "DUP",
		account: "Loader", amount: 3000})
	// Recent Active: same load but still buying, so not at risk.
	for m := 4; m <= 12; m++ {
		rows = append(rows, sale{date: monthsBefore(m), item: "ITEM-A", brand: "DUP",
			account: "Recent Active", amount: 200})
	}
	rows = append(rows, sale{date: daysBefore(60), item: "ITEM-A", brand: "DUP",
		account: "Recent Active", amount: 3000})
	rows = append(rows, sale{date: daysBefore(10), item: "ITEM-A", brand: "DUP",
		account: "Recent Active", amount: 50})
	// Steady: unremarkable run rate.
	for m := 1; m <= 12; m++ {
		rows = append(rows, sale{date: monthsBefore(m), item: "ITEM-A", brand: "DUP",
			account: "Steady", amount: 200})
	}
	insertSales(t, db, rows)

	flagged, err := e.OverstockRisk(context.Background(), OverstockOptions{AsOf: testAsOf})
	checkNoError(t, err)
	checkSliceLen(t, "flagged", len(flagged), 1)

	got := flagged[0]
	checkStringEqual(t, "Account", got.Account, "Loader")
	// 4800 over 10 active months, pro-rated to the 90-day band: 1440.
	checkFloatEqual(t, "AvgMonthlyAmount", got.AvgMonthlyAmount, 480)
	checkFloatEqual(t, "RecentAmount", got.RecentAmount, 3000)
	checkFloatEqual(t, "LoadIndex", got.LoadIndex, 2.08)
	if !got.LastPurchaseDate.Equal(daysBefore(60)) {
		t.Errorf("LastPurchaseDate = %v, want %v", got.LastPurchaseDate, daysBefore(60))
	}
}

func TestOverstockRisk_Validation(t *testing.T) {
	e, _ := setupTestEngine(t)

	_, err := e.OverstockRisk(context.Background(), OverstockOptions{AsOf: testAsOf, RecentDays: -7})
	checkError(t, err)
	checkTrue(t, "invalid parameter", models.IsInvalidParameter(err))
}
