// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

// Package database provides data access over the sales-transaction relation
// for the Shelfwatch analytics engine.
//
// # Overview
//
// This package is the data layer between the engine and DuckDB. It owns the
// schema, the parameterized filter builder, the half-open window helpers and
// every aggregate query the analytics package consumes. The engine never
// touches SQL; it asks this package for windowed aggregates and row sets and
// applies classification logic on top.
//
// # Architecture
//
// Core database operations:
//   - database.go: connection lifecycle (open, pool tuning, schema init, close)
//   - database_utils.go: context deadlines, query runners, checkpoint, close helpers
//   - schema.go: sales table creation and index management
//   - seed.go: deterministic demo dataset for local evaluation
//
// Query surface:
//   - filter.go: scope and column filters with parameterized WHERE building
//   - windows.go: half-open rolling window arithmetic
//   - aggregate.go: windowed coverage aggregates over a validated dimension
//   - coverage.go: coverage loss, account movement and scope overlap queries
//   - availability.go: out-of-stock, stoppage, channel split and overstock queries
//   - series.go: sparse monthly series and fleet item totals
//   - catalog.go: brand and item lookups backing question resolution
//
// # Database Technology
//
// The package uses DuckDB (not SQLite) as its analytics database:
//   - OLAP-optimized columnar execution for windowed aggregates
//   - Advanced SQL (CTEs, conditional aggregates, INTERSECT)
//   - CGO-based driver (github.com/duckdb/duckdb-go/v2)
//
// # Key Behaviors
//
//   - Every window comparison is half-open [start, end): the historical band
//     ends exactly where the recent band begins, no gap and no overlap.
//   - All values reach SQL as bound parameters. Identifiers (the dimension
//     column) pass through an explicit whitelist before interpolation.
//   - Every query runs under a per-query deadline from
//     config.DatabaseConfig.QueryTimeout and surfaces failures as
//     models.DataAccessError, never as silently-zero aggregates.
//
// # Usage
//
//	db, err := database.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	f := database.NewFilter(scope.Brand("DUP"))
//	agg, err := db.WindowAggregate(ctx, f, database.MonthsWindow(asOf, 12))
package database
