// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/metrics"
	"github.com/shelfwatch/shelfwatch/internal/models"
)

// Catalog lookups back question resolution (scope.Catalog is satisfied by
// *DB). These run once per incoming question with fixed SQL, so they go
// through the prepared statement cache.

// ListBrands returns the distinct brand names in the relation, sorted.
func (db *DB) ListBrands(ctx context.Context) ([]string, error) {
	const op = "list_brands"
	const query = `
		SELECT DISTINCT brand
		FROM sales
		WHERE brand IS NOT NULL AND brand <> ''
		ORDER BY brand
	`

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stmt, err := db.getStatement(ctx, query)
	if err != nil {
		return nil, models.NewDataAccessError(op, err)
	}

	start := time.Now()
	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		metrics.RecordDBQuery(op, "sales", time.Since(start), err)
		return nil, models.NewDataAccessError(op, err)
	}
	defer closeQuietly(rows)

	var brands []string
	for rows.Next() {
		var brand string
		if err := rows.Scan(&brand); err != nil {
			metrics.RecordDBQuery(op, "sales", time.Since(start), err)
			return nil, models.NewDataAccessError(op, err)
		}
		brands = append(brands, brand)
	}
	err = rows.Err()
	metrics.RecordDBQuery(op, "sales", time.Since(start), err)
	if err != nil {
		return nil, models.NewDataAccessError(op, err)
	}
	return brands, nil
}

// LookupItem resolves an exact item code or exact description
// (case-insensitive) to the item code. ok is false when nothing matches.
func (db *DB) LookupItem(ctx context.Context, token string) (string, bool, error) {
	const query = `
		SELECT item_code
		FROM sales
		WHERE lower(item_code) = lower(?) OR lower(item_desc) = lower(?)
		ORDER BY item_code
		LIMIT 1
	`

	var code string
	ok, err := db.lookupRow(ctx, "lookup_item", query, []interface{}{token, token}, &code)
	return code, ok, err
}

// LookupItemByDesc resolves a description fragment (substring match,
// case-insensitive) to the first matching item code.
func (db *DB) LookupItemByDesc(ctx context.Context, fragment string) (string, bool, error) {
	const query = `
		SELECT item_code
		FROM sales
		WHERE item_desc ILIKE ?
		ORDER BY item_code
		LIMIT 1
	`

	var code string
	ok, err := db.lookupRow(ctx, "lookup_item_desc", query, []interface{}{"%" + fragment + "%"}, &code)
	return code, ok, err
}

// ItemBasics is the identification row for a single item inside a window.
type ItemBasics struct {
	ItemCode     string
	ItemDesc     string
	Brand        string
	TotalAmount  float64
	AccountCount int64
	LastSale     time.Time
	Found        bool
}

// GetItemBasics returns one item's identity and window totals. Found is
// false when the item has no rows inside w.
func (db *DB) GetItemBasics(ctx context.Context, itemCode string, w Window) (*ItemBasics, error) {
	const query = `
		SELECT
			COUNT(*) AS row_count,
			COALESCE(MAX(item_desc), '') AS item_desc,
			COALESCE(MAX(brand), '') AS brand,
			COALESCE(SUM(amount), 0) AS total_amount,
			COUNT(DISTINCT account_name) AS account_count,
			MAX(invoice_date) AS last_sale
		FROM sales
		WHERE item_code = ? AND invoice_date >= ? AND invoice_date < ?
	`

	basics := &ItemBasics{ItemCode: itemCode}
	var rowCount int64
	var lastSale sql.NullTime
	err := db.queryRow(ctx, "item_basics", query,
		[]interface{}{itemCode, w.Start, w.End},
		&rowCount, &basics.ItemDesc, &basics.Brand,
		&basics.TotalAmount, &basics.AccountCount, &lastSale)
	if err != nil {
		return nil, err
	}

	basics.Found = rowCount > 0
	if lastSale.Valid {
		basics.LastSale = lastSale.Time
	}
	return basics, nil
}

// lookupRow runs a stmt-cached single-row lookup. A miss (no rows) is a
// normal outcome, not an error, and is not counted as a query failure.
func (db *DB) lookupRow(ctx context.Context, op, query string, args []interface{}, dest ...interface{}) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stmt, err := db.getStatement(ctx, query)
	if err != nil {
		return false, models.NewDataAccessError(op, err)
	}

	start := time.Now()
	err = stmt.QueryRowContext(ctx, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery(op, "sales", time.Since(start), nil)
		return false, nil
	}
	metrics.RecordDBQuery(op, "sales", time.Since(start), err)
	if err != nil {
		return false, models.NewDataAccessError(op, err)
	}
	return true, nil
}
