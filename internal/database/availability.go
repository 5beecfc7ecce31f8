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

// ItemAvailabilityRow is the per-item split the out-of-stock detector
// classifies: everything before cut is the historical band, everything from
// cut on is the recent band, both inside the same analysis horizon.
// ActiveMonths counts distinct calendar months with historical sales, the
// divisor for the item's monthly run rate.
type ItemAvailabilityRow struct {
	ItemCode               string
	ItemDesc               string
	Brand                  string
	HistoricalAmount       float64
	HistoricalQty          int64
	HistoricalTransactions int64
	AffectedAccounts       int64
	ActiveMonths           int64
	RecentAmount           float64
	LastSaleDate           time.Time
}

// GetItemAvailabilityRows returns one row per item in scope over the horizon
// window, split at cut into historical and recent bands. Items whose
// historical amount falls below minHistorical are dropped (materiality
// floor). Sorted by historical amount descending.
func (db *DB) GetItemAvailabilityRows(ctx context.Context, f *Filter, horizon Window, cut time.Time, minHistorical float64) ([]ItemAvailabilityRow, error) {
	where, whereArgs := f.whereClause(horizon)

	query := fmt.Sprintf(`
		SELECT
			item_code,
			COALESCE(MAX(item_desc), '') AS item_desc,
			COALESCE(MAX(brand), '') AS brand,
			COALESCE(SUM(CASE WHEN invoice_date < ? THEN amount ELSE 0 END), 0) AS historical_amount,
			COALESCE(SUM(CASE WHEN invoice_date < ? THEN regular_qty + bonus_qty ELSE 0 END), 0) AS historical_qty,
			COUNT(DISTINCT CASE WHEN invoice_date < ? THEN invoice_no END) AS historical_transactions,
			COUNT(DISTINCT CASE WHEN invoice_date < ? THEN account_name END) AS affected_accounts,
			COUNT(DISTINCT CASE WHEN invoice_date < ? THEN date_trunc('month', invoice_date) END) AS active_months,
			COALESCE(SUM(CASE WHEN invoice_date >= ? THEN amount ELSE 0 END), 0) AS recent_amount,
			MAX(invoice_date) AS last_sale
		FROM sales
		WHERE %s
		GROUP BY item_code
		HAVING historical_amount >= ?
		ORDER BY historical_amount DESC
	`, where)

	cutDay := truncateDay(cut)
	args := make([]interface{}, 0, len(whereArgs)+7)
	args = append(args, cutDay, cutDay, cutDay, cutDay, cutDay, cutDay)
	args = append(args, whereArgs...)
	args = append(args, minHistorical)

	var items []ItemAvailabilityRow
	err := db.queryRows(ctx, "item_availability", query, args, func(rows *sql.Rows) error {
		var row ItemAvailabilityRow
		if err := rows.Scan(&row.ItemCode, &row.ItemDesc, &row.Brand,
			&row.HistoricalAmount, &row.HistoricalQty, &row.HistoricalTransactions,
			&row.AffectedAccounts, &row.ActiveMonths, &row.RecentAmount, &row.LastSaleDate); err != nil {
			return err
		}
		items = append(items, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ItemSplit holds one item's amounts and distinct accounts inside two
// comparison bands. RowCount covers the union of both bands and
// distinguishes "no data at all" from "zero sales".
type ItemSplit struct {
	HistoricalAmount   float64
	HistoricalAccounts int64
	RecentAmount       float64
	RecentAccounts     int64
	RowCount           int64
}

// GetItemWindowSplit aggregates one item inside the historical and recent
// bands. The bands usually tile (historical ends where recent begins) but
// the query does not require it.
func (db *DB) GetItemWindowSplit(ctx context.Context, itemCode string, historical, recent Window) (*ItemSplit, error) {
	outerStart := historical.Start
	if recent.Start.Before(outerStart) {
		outerStart = recent.Start
	}
	outerEnd := recent.End
	if historical.End.After(outerEnd) {
		outerEnd = historical.End
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN invoice_date >= ? AND invoice_date < ? THEN amount ELSE 0 END), 0) AS historical_amount,
			COUNT(DISTINCT CASE WHEN invoice_date >= ? AND invoice_date < ? THEN account_name END) AS historical_accounts,
			COALESCE(SUM(CASE WHEN invoice_date >= ? AND invoice_date < ? THEN amount ELSE 0 END), 0) AS recent_amount,
			COUNT(DISTINCT CASE WHEN invoice_date >= ? AND invoice_date < ? THEN account_name END) AS recent_accounts,
			COUNT(*) AS row_count
		FROM sales
		WHERE item_code = ? AND invoice_date >= ? AND invoice_date < ?
	`

	args := []interface{}{
		historical.Start, historical.End,
		historical.Start, historical.End,
		recent.Start, recent.End,
		recent.Start, recent.End,
		itemCode, outerStart, outerEnd,
	}

	var split ItemSplit
	err := db.queryRow(ctx, "item_window_split", query, args,
		&split.HistoricalAmount, &split.HistoricalAccounts,
		&split.RecentAmount, &split.RecentAccounts, &split.RowCount)
	if err != nil {
		return nil, err
	}
	return &split, nil
}

// ChannelSplitRow is one channel's historical/recent split for a single
// item. Only channels with historical sales appear.
type ChannelSplitRow struct {
	Channel            string
	RecentAmount       float64
	HistoricalAmount   float64
	RecentAccounts     int64
	HistoricalAccounts int64
}

// GetChannelSplits returns per-channel splits for one item over the horizon,
// cut at recent.Start. Channels without historical sales are dropped; a
// channel that only just started selling cannot have gone dark.
func (db *DB) GetChannelSplits(ctx context.Context, itemCode string, horizon Window, cut time.Time) ([]ChannelSplitRow, error) {
	query := `
		SELECT
			channel,
			COALESCE(SUM(CASE WHEN invoice_date >= ? THEN amount ELSE 0 END), 0) AS recent_amount,
			COALESCE(SUM(CASE WHEN invoice_date < ? THEN amount ELSE 0 END), 0) AS historical_amount,
			COUNT(DISTINCT CASE WHEN invoice_date >= ? THEN account_name END) AS recent_accounts,
			COUNT(DISTINCT CASE WHEN invoice_date < ? THEN account_name END) AS historical_accounts
		FROM sales
		WHERE item_code = ? AND channel IS NOT NULL AND invoice_date >= ? AND invoice_date < ?
		GROUP BY channel
		HAVING historical_amount > 0
		ORDER BY historical_amount DESC
	`

	cutDay := truncateDay(cut)
	args := []interface{}{cutDay, cutDay, cutDay, cutDay, itemCode, horizon.Start, horizon.End}

	var splits []ChannelSplitRow
	err := db.queryRows(ctx, "channel_splits", query, args, func(rows *sql.Rows) error {
		var row ChannelSplitRow
		if err := rows.Scan(&row.Channel, &row.RecentAmount, &row.HistoricalAmount,
			&row.RecentAccounts, &row.HistoricalAccounts); err != nil {
			return err
		}
		splits = append(splits, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return splits, nil
}

// GetStoppageAlerts finds items that at least minAccounts accounts stopped
// buying: each account's last purchase of the item inside the horizon
// predates cutoff. lost_amount sums the stopped accounts' horizon activity
// for the item. Sorted by stopped accounts, then lost amount, descending.
func (db *DB) GetStoppageAlerts(ctx context.Context, f *Filter, horizon Window, cutoff time.Time, minAccounts int) ([]models.StoppageAlert, error) {
	where, whereArgs := f.whereClause(horizon)

	query := fmt.Sprintf(`
		WITH account_last AS (
			SELECT
				item_code,
				account_name,
				MAX(invoice_date) AS last_buy,
				SUM(amount) AS account_amount
			FROM sales
			WHERE %s
			GROUP BY item_code, account_name
		),
		stopped AS (
			SELECT
				item_code,
				COUNT(*) AS stopped_accounts,
				MAX(last_buy) AS most_recent_stop,
				COALESCE(SUM(account_amount), 0) AS lost_amount
			FROM account_last
			WHERE last_buy < ?
			GROUP BY item_code
			HAVING COUNT(*) >= ?
		),
		item_meta AS (
			SELECT
				item_code,
				COALESCE(MAX(item_desc), '') AS item_desc,
				COALESCE(MAX(brand), '') AS brand
			FROM sales
			GROUP BY item_code
		)
		SELECT
			st.item_code,
			m.item_desc,
			m.brand,
			st.stopped_accounts,
			st.most_recent_stop,
			st.lost_amount
		FROM stopped st
		JOIN item_meta m USING (item_code)
		ORDER BY st.stopped_accounts DESC, st.lost_amount DESC
	`, where)

	args := make([]interface{}, 0, len(whereArgs)+2)
	args = append(args, whereArgs...)
	args = append(args, truncateDay(cutoff), minAccounts)

	var alerts []models.StoppageAlert
	err := db.queryRows(ctx, "stoppage_alerts", query, args, func(rows *sql.Rows) error {
		var alert models.StoppageAlert
		if err := rows.Scan(&alert.ItemCode, &alert.ItemDesc, &alert.Brand,
			&alert.StoppedAccounts, &alert.MostRecentStop, &alert.LostAmount); err != nil {
			return err
		}
		alerts = append(alerts, alert)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// SaleDayStats summarizes an item's activity per actual sale day, the basis
// for estimating what a stock-out costs per day off the shelf.
type SaleDayStats struct {
	SaleDays    int64
	TotalAmount float64
	Accounts    int64
}

// GetItemSaleDayStats counts distinct sale days, total amount and distinct
// accounts for one item inside w.
func (db *DB) GetItemSaleDayStats(ctx context.Context, itemCode string, w Window) (*SaleDayStats, error) {
	query := `
		SELECT
			COUNT(DISTINCT invoice_date) AS sale_days,
			COALESCE(SUM(amount), 0) AS total_amount,
			COUNT(DISTINCT account_name) AS accounts
		FROM sales
		WHERE item_code = ? AND invoice_date >= ? AND invoice_date < ?
	`

	var stats SaleDayStats
	err := db.queryRow(ctx, "item_sale_days", query,
		[]interface{}{itemCode, w.Start, w.End},
		&stats.SaleDays, &stats.TotalAmount, &stats.Accounts)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// AccountActivityRow is one account's run-rate snapshot: horizon total,
// months with activity, amount bought since recentStart and the last
// purchase date. The overstock detector grades these in Go.
type AccountActivityRow struct {
	Account      string
	TotalAmount  float64
	ActiveMonths int64
	RecentAmount float64
	LastPurchase time.Time
}

// GetAccountActivityRows returns per-account activity over the horizon with
// the recent share split out at recentStart. Accounts with no horizon
// activity are dropped. Sorted by recent amount descending.
func (db *DB) GetAccountActivityRows(ctx context.Context, f *Filter, horizon Window, recentStart time.Time) ([]AccountActivityRow, error) {
	where, whereArgs := f.whereClause(horizon)

	query := fmt.Sprintf(`
		SELECT
			account_name,
			COALESCE(SUM(amount), 0) AS total_amount,
			COUNT(DISTINCT date_trunc('month', invoice_date)) AS active_months,
			COALESCE(SUM(CASE WHEN invoice_date >= ? THEN amount ELSE 0 END), 0) AS recent_amount,
			MAX(invoice_date) AS last_purchase
		FROM sales
		WHERE %s
		GROUP BY account_name
		HAVING total_amount > 0
		ORDER BY recent_amount DESC
	`, where)

	args := make([]interface{}, 0, len(whereArgs)+1)
	args = append(args, truncateDay(recentStart))
	args = append(args, whereArgs...)

	var accounts []AccountActivityRow
	err := db.queryRows(ctx, "account_activity", query, args, func(rows *sql.Rows) error {
		var row AccountActivityRow
		if err := rows.Scan(&row.Account, &row.TotalAmount, &row.ActiveMonths,
			&row.RecentAmount, &row.LastPurchase); err != nil {
			return err
		}
		accounts = append(accounts, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
