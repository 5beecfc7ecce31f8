// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/metrics"
	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
	"github.com/shelfwatch/shelfwatch/internal/stats"
)

// SeasonalScanOptions parameterize SeasonalScan.
type SeasonalScanOptions struct {
	AsOf     time.Time
	Months   int
	MinTotal float64
}

// SeasonalScan classifies every item in scope above the sales floor and
// returns the ones whose series tested seasonal, largest first. Items are
// classified in parallel across a bounded worker pool.
func (e *Engine) SeasonalScan(ctx context.Context, s scope.Scope, opts SeasonalScanOptions) (_ []models.SeasonalItem, err error) {
	defer e.observe("seasonal_scan", time.Now(), &err)

	months := orDefault(opts.Months, e.cfg.SeasonalMonths)
	if months <= 0 {
		return nil, models.NewInvalidParameterError("months", "must be a positive month count")
	}
	minTotal := orDefaultFloat(opts.MinTotal, e.cfg.SeasonalMinTotal)

	asOf := database.ResolveAsOf(opts.AsOf)
	w := database.MonthsWindow(asOf, months)

	eligible, err := e.db.GetItemTotals(ctx, filterFor(s), w, minTotal)
	if err != nil {
		return nil, err
	}
	metrics.RecordScanSize("seasonal_scan", len(eligible))

	var (
		mu       sync.Mutex
		seasonal []models.SeasonalItem
	)
	err = e.forEachItem(ctx, s, w, eligible, func(item database.ItemTotal, series []models.MonthPoint) {
		c := e.classifySeries(item.ItemCode, series)
		if !c.IsSeasonal {
			return
		}
		row := models.SeasonalItem{
			ItemCode:    item.ItemCode,
			ItemDesc:    item.ItemDesc,
			Brand:       item.Brand,
			TotalAmount: item.TotalAmount,
			Pattern:     c.Pattern,
			PeakMonths:  c.PeakMonths,
			CV:          c.CV,
			SeasonalLag: c.SeasonalLag,
		}
		mu.Lock()
		seasonal = append(seasonal, row)
		mu.Unlock()
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(seasonal, func(i, j int) bool {
		if seasonal[i].TotalAmount != seasonal[j].TotalAmount {
			return seasonal[i].TotalAmount > seasonal[j].TotalAmount
		}
		return seasonal[i].ItemCode < seasonal[j].ItemCode
	})
	return seasonal, nil
}

// AnomalyScanOptions parameterize AnomalyScan.
type AnomalyScanOptions struct {
	AsOf   time.Time
	Months int
	// Z overrides the configured |z| threshold. Zero means the default.
	Z float64
}

// AnomalyScan finds anomalous months across every item in scope: one event
// per month whose standardized score exceeds the z threshold.
// Items with fewer than three active months are skipped. Events sort by
// item code, then month.
func (e *Engine) AnomalyScan(ctx context.Context, s scope.Scope, opts AnomalyScanOptions) (_ []models.AnomalyEvent, err error) {
	defer e.observe("anomaly_scan", time.Now(), &err)

	months := orDefault(opts.Months, e.cfg.PatternMonths)
	if months <= 0 {
		return nil, models.NewInvalidParameterError("months", "must be a positive month count")
	}
	z := opts.Z
	if z == 0 {
		z = e.cfg.AnomalyZScore
	}
	if z <= 0 {
		return nil, models.NewInvalidParameterError("z", "must be a positive threshold")
	}

	asOf := database.ResolveAsOf(opts.AsOf)
	w := database.MonthsWindow(asOf, months)

	eligible, err := e.db.GetItemTotals(ctx, filterFor(s), w, 0)
	if err != nil {
		return nil, err
	}
	metrics.RecordScanSize("anomaly_scan", len(eligible))

	var (
		mu     sync.Mutex
		events []models.AnomalyEvent
	)
	err = e.forEachItem(ctx, s, w, eligible, func(item database.ItemTotal, series []models.MonthPoint) {
		found := e.scanSeriesAnomalies(item, series, z)
		if len(found) == 0 {
			return
		}
		mu.Lock()
		events = append(events, found...)
		mu.Unlock()
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].ItemCode != events[j].ItemCode {
			return events[i].ItemCode < events[j].ItemCode
		}
		return events[i].Month < events[j].Month
	})
	return events, nil
}

// scanSeriesAnomalies standardizes one item's series and emits an event per
// outlier month. A spike is any value above the series mean; the rest are
// drops.
func (e *Engine) scanSeriesAnomalies(item database.ItemTotal, series []models.MonthPoint, z float64) []models.AnomalyEvent {
	if len(series) < minSeriesPoints {
		return nil
	}

	amounts := make([]float64, len(series))
	for i, point := range series {
		amounts[i] = point.Amount
	}
	mean := stats.Mean(amounts)
	zScores := stats.ZScores(amounts)

	var events []models.AnomalyEvent
	for i, score := range zScores {
		if math.Abs(score) <= z {
			continue
		}
		kind := "Drop"
		if amounts[i] > mean {
			kind = "Spike"
		}
		deviation := 0.0
		if mean != 0 {
			deviation = stats.Round((amounts[i]-mean)/mean*100, 2)
		}
		events = append(events, models.AnomalyEvent{
			ItemCode:     item.ItemCode,
			ItemDesc:     item.ItemDesc,
			Brand:        item.Brand,
			Month:        series[i].Month,
			Amount:       amounts[i],
			ZScore:       stats.Round(math.Abs(score), 2),
			Kind:         kind,
			DeviationPct: deviation,
		})
	}
	return events
}

// forEachItem fans items out to a bounded worker pool, loading each item's
// monthly series within the scan scope and handing it to fn. The first
// series-load failure cancels the remaining loads and is returned; fn runs
// concurrently and must synchronize its own writes.
func (e *Engine) forEachItem(ctx context.Context, s scope.Scope, w database.Window, items []database.ItemTotal, fn func(item database.ItemTotal, series []models.MonthPoint)) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		firstErr error
	)
	jobs := make(chan database.ItemTotal)
	var wg sync.WaitGroup
	for i := 0; i < e.workerCount(len(items)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				f := filterFor(s)
				f.Items = []string{item.ItemCode}
				series, serr := e.db.GetMonthlySeries(ctx, f, w)
				if serr != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = serr
						cancel()
					}
					mu.Unlock()
					continue
				}
				fn(item, series)
			}
		}()
	}
	for _, item := range items {
		jobs <- item
	}
	close(jobs)
	wg.Wait()

	return firstErr
}
