// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

// Package api exposes the analysis engine over HTTP.
//
// Every endpoint lives under /api/v1 and answers with one envelope:
// {success, data, error{code, message}, meta{request_id, timestamp,
// duration_ms}}. Engine errors map onto the envelope by kind: invalid
// parameters answer 400, unknown items 404, storage failures 500. The
// surface is read-only except POST /api/v1/ask, which resolves a free-text
// question into a scoped analysis request and dispatches it.
//
// Handlers split by analysis family:
//   - handlers.go: Handler wiring and construction
//   - handlers_health.go: liveness, readiness and the health report
//   - handlers_coverage.go: coverage ladder, loss, movement, comparison
//   - handlers_availability.go: OOS, channels, stoppage, decline, impact,
//     overstock
//   - handlers_patterns.go: pattern, seasonal scan, anomaly scan, stability
//   - handlers_reports.go: item health and the cached brand dashboard
//   - handlers_ask.go: free-text question dispatch
//
// router.go assembles the chi router: request-ID and recovery middleware
// globally, then per-family route groups each carrying its own rate limit.
package api
