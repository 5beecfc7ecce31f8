// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

// Package analytics implements the analysis engine over the sales relation:
// coverage measurement, availability-risk (out-of-stock) detection, decline
// cause diagnosis, demand pattern classification and the aggregated brand
// dashboard.
//
// # Architecture
//
// Engine wraps a database handle and the analysis thresholds from
// configuration. Every operation is a pure function of (scope, options,
// relation snapshot): SQL produces the windowed aggregates, Go applies the
// classification rules. Nothing in this package holds mutable state, so one
// Engine serves all requests concurrently.
//
//   - engine.go: Engine construction and shared option defaults
//   - coverage.go: horizon coverage, coverage loss, account movement,
//     scope comparison
//   - availability.go: out-of-stock detection, channel availability,
//     multi-account stoppage, stock-out impact, account overstock
//   - decline.go: ordered supply-vs-demand decline rules
//   - pattern.go: per-item demand pattern classification
//   - scan.go: parallel fleet scans (seasonal items, anomalies)
//   - stability.go: run-rate stability tiers
//   - dashboard.go: brand dashboard fan-out and item health report
//
// # Classification Rules
//
// Decline causes and pattern labels are ordered rule lists evaluated
// top-to-bottom, first match wins. The rules live in package-level tables so
// the precedence is explicit rather than encoded in branch order.
//
// # Error Handling
//
// Operations return typed errors from internal/models: InvalidParameterError
// for rejected options, DataAccessError bubbled up from the database layer.
// Thin data is not an error: series with too few points classify as
// "Insufficient Data" with zero confidence.
package analytics
