// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/metrics"
	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

// healthCoverageWindows are the horizons checked by ItemHealth.
var healthCoverageWindows = []int{12, 24, 36}

// DashboardOptions parameterize BrandDashboard.
type DashboardOptions struct {
	AsOf       time.Time
	RecentDays int
}

// BrandDashboard assembles the integrated supply-chain report for one scope:
// out-of-stock candidates, multi-account stoppages, coverage loss, seasonal
// items and anomalies. Sections run in parallel and fail independently; a
// broken section lands in the report as an error string, never as an aborted
// report.
func (e *Engine) BrandDashboard(ctx context.Context, s scope.Scope, opts DashboardOptions) (_ *models.BrandDashboard, err error) {
	defer e.observe("brand_dashboard", time.Now(), &err)

	if verr := s.Validate(); verr != nil {
		return nil, verr
	}
	recentDays := orDefault(opts.RecentDays, e.cfg.OOSRecentDays)
	if recentDays <= 0 || recentDays >= 365 {
		return nil, models.NewInvalidParameterError("recent_days", "must be between 1 and 364")
	}
	asOf := database.ResolveAsOf(opts.AsOf)

	start := time.Now()
	report := &models.BrandDashboard{
		ReportID:    uuid.NewString(),
		Brand:       s.String(),
		GeneratedAt: start.UTC(),
		RecentDays:  recentDays,
		Sections:    make(map[string]models.DashboardSection, 5),
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		failed []string
	)
	run := func(section string, fn func() (int, interface{}, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, items, serr := fn()
			mu.Lock()
			defer mu.Unlock()
			if serr != nil {
				report.Sections[section] = models.DashboardSection{Error: serr.Error()}
				failed = append(failed, section)
				return
			}
			report.Sections[section] = models.DashboardSection{Count: count, Items: items}
		}()
	}

	run(models.SectionOOSItems, func() (int, interface{}, error) {
		oos, serr := e.DetectOOS(ctx, s, OOSOptions{AsOf: asOf, RecentDays: recentDays})
		if serr != nil {
			return 0, nil, serr
		}
		return len(oos.Candidates), oos.Candidates, nil
	})
	run(models.SectionSupplyIssues, func() (int, interface{}, error) {
		alerts, serr := e.MultiAccountStoppage(ctx, s, StoppageOptions{AsOf: asOf, RecentDays: recentDays})
		return len(alerts), alerts, serr
	})
	run(models.SectionCoverageLoss, func() (int, interface{}, error) {
		loss, serr := e.CoverageLoss(ctx, s, LossOptions{AsOf: asOf})
		if serr != nil {
			return 0, nil, serr
		}
		return loss.LostCount, loss.Accounts, nil
	})
	run(models.SectionSeasonal, func() (int, interface{}, error) {
		rows, serr := e.SeasonalScan(ctx, s, SeasonalScanOptions{AsOf: asOf})
		return len(rows), rows, serr
	})
	run(models.SectionAnomalies, func() (int, interface{}, error) {
		events, serr := e.AnomalyScan(ctx, s, AnomalyScanOptions{AsOf: asOf})
		return len(events), events, serr
	})

	wg.Wait()
	report.FailedCount = len(failed)
	report.ElapsedMs = time.Since(start).Milliseconds()
	metrics.RecordDashboardReport(time.Since(start), failed)
	return report, nil
}

// ItemHealth runs the composite health check for a single item: trailing-12M
// basics, multi-horizon coverage, pattern classification, its out-of-stock
// row when flagged, and the per-channel split. The item code is resolved
// case-insensitively; an item with no sales in the trailing year is reported
// as not found.
func (e *Engine) ItemHealth(ctx context.Context, itemCode string, asOf time.Time) (_ *models.ItemHealthReport, err error) {
	defer e.observe("item_health", time.Now(), &err)

	if itemCode == "" {
		return nil, models.NewInvalidParameterError("item_code", "must not be empty")
	}
	at := database.ResolveAsOf(asOf)

	canonical, ok, err := e.db.LookupItem(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("item", itemCode)
	}

	basics, err := e.db.GetItemBasics(ctx, canonical, database.MonthsWindow(at, analysisHorizonMonths))
	if err != nil {
		return nil, err
	}
	if !basics.Found {
		return nil, models.NewNotFoundError("item", canonical)
	}

	report := &models.ItemHealthReport{
		ItemCode:       canonical,
		ItemDesc:       basics.ItemDesc,
		Brand:          basics.Brand,
		TotalAmount12M: basics.TotalAmount,
		AccountCount:   basics.AccountCount,
		LastSaleDate:   basics.LastSale,
	}

	coverage, err := e.CoverageByHorizons(ctx, scope.Item(canonical), CoverageOptions{AsOf: at, Windows: healthCoverageWindows})
	if err != nil {
		return nil, err
	}
	report.Coverage = coverage.Windows

	pattern, err := e.ClassifyPattern(ctx, canonical, PatternOptions{AsOf: at})
	if err != nil {
		return nil, err
	}
	report.Pattern = pattern

	oos, err := e.DetectOOS(ctx, scope.Item(canonical), OOSOptions{AsOf: at})
	if err != nil {
		return nil, err
	}
	if len(oos.Candidates) > 0 {
		report.OOSRisk = &oos.Candidates[0]
	}

	channels, err := e.ChannelAvailability(ctx, canonical, ChannelOptions{AsOf: at})
	if err != nil {
		return nil, err
	}
	report.Channels = channels

	return report, nil
}
