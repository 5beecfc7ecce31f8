// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

/*
Package models defines the data structures shared across the Shelfwatch engine.

This package contains all derived analytics records returned by the engine,
plus the typed errors the engine surfaces. It is the single source of truth
for record shapes; the database and analytics packages produce these types,
the API layer serializes them.

Model Categories:

 1. Coverage Models:
    - CoverageRecord: distinct-account coverage for one rolling window
    - CoverageLossRecord: a historical account absent from the recent window
    - AccountMovement: new/lost/retained counts between adjacent periods
    - ScopeComparison: coverage overlap between two scopes

 2. Availability Models:
    - OOSCandidate: an item flagged as a probable out-of-stock
    - DeclineClassification: supply-driven vs demand-driven diagnosis
    - ChannelAvailability: per-channel recent vs historical split
    - StoppageAlert: multi-account simultaneous purchase stoppage
    - OOSImpact, OverstockAccount: impact estimation and overstock risk

 3. Pattern Models:
    - PatternClassification: full classifier verdict for one item
    - MonthPoint: one month of the sparse monthly series
    - SeasonalItem, AnomalyEvent, StabilityReport: fleet-scan results

 4. Composite Models:
    - BrandDashboard: multi-section brand report with per-section errors
    - ItemHealthReport: single-item composite health check

Thread Safety:

All models are plain data structures, immutable after creation and safe for
concurrent read access.

JSON Marshaling:

All records carry snake_case struct tags and marshal dates as RFC3339.
Records are recomputed on demand and never written back to the store.
*/
package models
