// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

// Package main provides the Shelfwatch HTTP server
//
// Shelfwatch API answers coverage, availability and sales-pattern questions
// over a distributor sales history stored in DuckDB.
//
// @title Shelfwatch API
// @version 1.0
// @description Sales coverage and availability analytics over distributor sales history
// @description
// @description ## Features
// @description
// @description - **Coverage Engine**: account-coverage percentages across rolling windows, coverage loss and account movement
// @description - **Availability Detector**: out-of-stock candidates, channel availability, multi-account stoppages, decline causes
// @description - **Pattern Classifier**: per-item sales patterns, seasonal scans, anomaly detection, run-rate stability
// @description - **Integrated Reports**: per-item health and per-brand supply-chain dashboards
// @description - **Free-text Questions**: POST /ask resolves a question to scope and analyses
// @description
// @description ## Anchor Dates
// @description
// @description All analyses accept an optional `as_of` query parameter (YYYY-MM-DD) anchoring
// @description every rolling window; it defaults to today. Responses repeat the effective
// @description anchor so cached and live responses are comparable.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Rate limit headers are included in responses: `X-RateLimit-Limit`, `X-RateLimit-Remaining`, `X-RateLimit-Reset`.
// @description
// @description ## Caching
// @description
// @description Brand dashboard responses are cached in memory with a 5-minute TTL.
// @description Cache hits are marked with `meta.cached: true`.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "request_id": "c1b9..."
// @description   },
// @description   "meta": {
// @description     "timestamp": "2026-08-25T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/shelfwatch/shelfwatch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:1248
// @BasePath /
// @schemes http https
//
// @tag.name Health
// @tag.description Liveness, readiness and service health endpoints
//
// @tag.name Coverage
// @tag.description Account coverage across rolling windows, coverage loss and account movement
//
// @tag.name Availability
// @tag.description Out-of-stock detection, channel availability, stoppages, decline causes and overstock risk
//
// @tag.name Patterns
// @tag.description Sales pattern classification, seasonal scans, anomaly detection and stability grading
//
// @tag.name Reports
// @tag.description Integrated item health and brand dashboard reports
//
// @tag.name Ask
// @tag.description Free-text question resolution
package main
