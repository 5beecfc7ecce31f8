// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

/*
Package metrics provides Prometheus instrumentation for Shelfwatch.

All collectors are registered on the default registry via promauto at
package load, so importing this package is enough to expose them; the
/metrics endpoint serves the default gatherer.

# Metric Groups

  - Database: DuckDB query durations and errors, labeled by operation and
    table, plus the in-use connection gauge.
  - Analysis: per-analysis durations and error counts for every engine
    operation (coverage, oos, decline, pattern, seasonal_scan, anomaly_scan,
    stability, overstock, dashboard), plus fleet-scan item counts.
  - API: request totals and latency by method and endpoint, in-flight
    request gauge, rate-limit rejections.
  - Cache: hit/miss/eviction counters and entry gauges by cache type.
  - Dashboard: report generation durations, report counts, per-section
    failure counters.
  - System: build info and uptime.

# Usage

Record helpers wrap the common patterns so call sites stay one line:

	defer func(start time.Time) {
	    metrics.RecordAnalysis("oos", time.Since(start), err)
	}(time.Now())

Histogram buckets are tuned per group: API latency buckets top out at 10s,
analysis buckets at 30s, dashboard buckets at 60s (fan-out reports can be
slow on cold caches).
*/
package metrics
