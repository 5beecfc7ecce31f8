// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/models"
)

// GetCoverageLossRows returns the dimension values (accounts, channels or
// emirates) that purchased inside the historical window but not inside the
// recent window, with aggregates over each value's full scope history and
// its true last purchase date. Sorted by historical amount descending.
//
// NULL dimension values are excluded throughout: an unattributed row is not
// a customer that can be lost, and a NULL inside NOT IN would empty the
// whole result.
func (db *DB) GetCoverageLossRows(ctx context.Context, f *Filter, dimension string, historical, recent Window, asOf time.Time) ([]models.CoverageLossRecord, error) {
	column, err := dimensionColumn(dimension)
	if err != nil {
		return nil, err
	}

	recentWhere, recentArgs := f.whereClause(recent)
	histWhere, histArgs := f.whereClause(historical)
	scopeWhere, scopeArgs := f.whereClause(Window{})

	query := fmt.Sprintf(`
		WITH recent_vals AS (
			SELECT DISTINCT %[1]s AS v FROM sales WHERE %[2]s AND %[1]s IS NOT NULL
		),
		hist_vals AS (
			SELECT DISTINCT %[1]s AS v FROM sales WHERE %[3]s AND %[1]s IS NOT NULL
		)
		SELECT
			%[1]s AS account,
			MAX(invoice_date) AS last_purchase,
			COALESCE(SUM(amount), 0) AS historical_amount,
			COALESCE(SUM(regular_qty + bonus_qty), 0) AS historical_qty,
			COUNT(DISTINCT invoice_no) AS historical_transactions,
			COUNT(DISTINCT item_code) AS items_bought
		FROM sales
		WHERE %[4]s
			AND %[1]s IN (SELECT v FROM hist_vals)
			AND %[1]s NOT IN (SELECT v FROM recent_vals)
		GROUP BY %[1]s
		ORDER BY historical_amount DESC
	`, column, recentWhere, histWhere, scopeWhere)

	args := make([]interface{}, 0, len(recentArgs)+len(histArgs)+len(scopeArgs))
	args = append(args, recentArgs...)
	args = append(args, histArgs...)
	args = append(args, scopeArgs...)

	asOf = ResolveAsOf(asOf)
	var records []models.CoverageLossRecord
	err = db.queryRows(ctx, "coverage_loss", query, args, func(rows *sql.Rows) error {
		var rec models.CoverageLossRecord
		if err := rows.Scan(&rec.Account, &rec.LastPurchaseDate, &rec.HistoricalAmount,
			&rec.HistoricalQty, &rec.HistoricalTransactions, &rec.ItemsBought); err != nil {
			return err
		}
		rec.DaysSinceLastPurchase = DaysBetween(rec.LastPurchaseDate, asOf)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// MovementCounts holds the account transitions between two adjacent periods.
type MovementCounts struct {
	New      int64
	Lost     int64
	Retained int64
}

// GetAccountMovement counts the dimension values that are new to the recent
// period, lost from the previous period, and present in both. By
// construction New+Retained equals recent coverage and Lost+Retained equals
// previous coverage.
func (db *DB) GetAccountMovement(ctx context.Context, f *Filter, dimension string, previous, recent Window) (*MovementCounts, error) {
	column, err := dimensionColumn(dimension)
	if err != nil {
		return nil, err
	}

	prevWhere, prevArgs := f.whereClause(previous)
	recentWhere, recentArgs := f.whereClause(recent)

	query := fmt.Sprintf(`
		WITH prev_vals AS (
			SELECT DISTINCT %[1]s AS v FROM sales WHERE %[2]s AND %[1]s IS NOT NULL
		),
		recent_vals AS (
			SELECT DISTINCT %[1]s AS v FROM sales WHERE %[3]s AND %[1]s IS NOT NULL
		)
		SELECT
			(SELECT COUNT(*) FROM recent_vals WHERE v NOT IN (SELECT v FROM prev_vals)) AS new_count,
			(SELECT COUNT(*) FROM prev_vals WHERE v NOT IN (SELECT v FROM recent_vals)) AS lost_count,
			(SELECT COUNT(*) FROM recent_vals WHERE v IN (SELECT v FROM prev_vals)) AS retained_count
	`, column, prevWhere, recentWhere)

	args := make([]interface{}, 0, len(prevArgs)+len(recentArgs))
	args = append(args, prevArgs...)
	args = append(args, recentArgs...)

	var counts MovementCounts
	err = db.queryRow(ctx, "account_movement", query, args, &counts.New, &counts.Lost, &counts.Retained)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// OverlapCounts holds per-scope coverage and the size of the intersection.
type OverlapCounts struct {
	CoverageA int64
	CoverageB int64
	Overlap   int64
}

// GetScopeOverlap counts each scope's coverage inside w and the overlap
// between them, computed with a true set INTERSECT rather than conditional
// counting.
func (db *DB) GetScopeOverlap(ctx context.Context, a, b *Filter, w Window, dimension string) (*OverlapCounts, error) {
	column, err := dimensionColumn(dimension)
	if err != nil {
		return nil, err
	}

	aWhere, aArgs := a.whereClause(w)
	bWhere, bArgs := b.whereClause(w)

	query := fmt.Sprintf(`
		WITH a_vals AS (
			SELECT DISTINCT %[1]s AS v FROM sales WHERE %[2]s AND %[1]s IS NOT NULL
		),
		b_vals AS (
			SELECT DISTINCT %[1]s AS v FROM sales WHERE %[3]s AND %[1]s IS NOT NULL
		)
		SELECT
			(SELECT COUNT(*) FROM a_vals) AS coverage_a,
			(SELECT COUNT(*) FROM b_vals) AS coverage_b,
			(SELECT COUNT(*) FROM (SELECT v FROM a_vals INTERSECT SELECT v FROM b_vals)) AS overlap
	`, column, aWhere, bWhere)

	args := make([]interface{}, 0, len(aArgs)+len(bArgs))
	args = append(args, aArgs...)
	args = append(args, bArgs...)

	var counts OverlapCounts
	err = db.queryRow(ctx, "scope_overlap", query, args, &counts.CoverageA, &counts.CoverageB, &counts.Overlap)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}
