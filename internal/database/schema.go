// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the sales relation. All columns are defined in the
// initial CREATE TABLE statement; the relation is append-only from the
// loader's side and read-only to the engine.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements.
func getTableCreationQueries() []string {
	return []string{
		// Sales transaction log. One row per invoice line.
		// brand is the selling brand code; brand_mask carries the
		// manufacturer grouping used by alias resolution, since some
		// manufacturers span several brand codes.
		`CREATE TABLE IF NOT EXISTS sales (
			invoice_no TEXT NOT NULL,
			invoice_date DATE NOT NULL,
			item_code TEXT NOT NULL,
			item_desc TEXT,
			brand TEXT,
			brand_mask TEXT,
			account_name TEXT NOT NULL,
			channel TEXT,
			emirate TEXT,
			salesman TEXT,
			amount DOUBLE NOT NULL DEFAULT 0,
			regular_qty BIGINT NOT NULL DEFAULT 0,
			bonus_qty BIGINT NOT NULL DEFAULT 0
		);`,
	}
}

// createIndexes creates indexes on the filter and grouping columns. Every
// analytical query windows on invoice_date, so that index leads.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_sales_invoice_date ON sales(invoice_date DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_account ON sales(account_name);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_brand ON sales(brand);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_item ON sales(item_code);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_emirate ON sales(emirate);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_salesman ON sales(salesman);`,
		// Composite for the per-item window splits under a date band.
		`CREATE INDEX IF NOT EXISTS idx_sales_item_date ON sales(item_code, invoice_date DESC);`,
		// Composite for per-account last-purchase scans.
		`CREATE INDEX IF NOT EXISTS idx_sales_account_date ON sales(account_name, invoice_date DESC);`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}
