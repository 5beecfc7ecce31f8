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

// monthKeyLayout renders a month bucket as the series key, e.g. "2025-03".
const monthKeyLayout = "2006-01"

// GetMonthlySeries returns the sparse monthly series for the filter inside
// w, ordered by month ascending. Months with no sales are absent rather than
// zero-filled; the classifier operates on active months only.
func (db *DB) GetMonthlySeries(ctx context.Context, f *Filter, w Window) ([]models.MonthPoint, error) {
	where, args := f.whereClause(w)

	query := fmt.Sprintf(`
		SELECT
			date_trunc('month', invoice_date) AS month,
			COALESCE(SUM(amount), 0) AS amount,
			COALESCE(SUM(regular_qty + bonus_qty), 0) AS quantity,
			COUNT(DISTINCT account_name) AS accounts
		FROM sales
		WHERE %s
		GROUP BY month
		ORDER BY month
	`, where)

	var series []models.MonthPoint
	err := db.queryRows(ctx, "monthly_series", query, args, func(rows *sql.Rows) error {
		var month time.Time
		var point models.MonthPoint
		if err := rows.Scan(&month, &point.Amount, &point.Quantity, &point.Accounts); err != nil {
			return err
		}
		point.Month = month.Format(monthKeyLayout)
		series = append(series, point)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return series, nil
}

// ItemTotal is one item's total amount inside a scan window, with the
// metadata scan results carry through.
type ItemTotal struct {
	ItemCode    string
	ItemDesc    string
	Brand       string
	TotalAmount float64
}

// GetItemTotals lists the items in scope whose total amount inside w reaches
// minTotal, sorted by total descending. The fleet scans use this as the
// eligibility pass before classifying items individually.
func (db *DB) GetItemTotals(ctx context.Context, f *Filter, w Window, minTotal float64) ([]ItemTotal, error) {
	where, whereArgs := f.whereClause(w)

	query := fmt.Sprintf(`
		SELECT
			item_code,
			COALESCE(MAX(item_desc), '') AS item_desc,
			COALESCE(MAX(brand), '') AS brand,
			COALESCE(SUM(amount), 0) AS total_amount
		FROM sales
		WHERE %s
		GROUP BY item_code
		HAVING total_amount >= ?
		ORDER BY total_amount DESC
	`, where)

	args := make([]interface{}, 0, len(whereArgs)+1)
	args = append(args, whereArgs...)
	args = append(args, minTotal)

	var totals []ItemTotal
	err := db.queryRows(ctx, "item_totals", query, args, func(rows *sql.Rows) error {
		var item ItemTotal
		if err := rows.Scan(&item.ItemCode, &item.ItemDesc, &item.Brand, &item.TotalAmount); err != nil {
			return err
		}
		totals = append(totals, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}
