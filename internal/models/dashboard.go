// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package models

import (
	"time"
)

// DashboardSection holds one section of a brand dashboard. Items carries the
// section payload; Error is set instead when that section's analysis failed,
// so one broken query never takes down the whole report.
type DashboardSection struct {
	Count int         `json:"count"`
	Items interface{} `json:"items,omitempty"`
	Error string      `json:"error,omitempty"`
}

// BrandDashboard is the integrated supply-chain report for one brand:
// out-of-stock candidates, multi-account stoppages, coverage loss, seasonal
// items and anomalies, assembled in parallel with per-section failure
// isolation.
type BrandDashboard struct {
	ReportID    string                      `json:"report_id"`
	Brand       string                      `json:"brand"`
	GeneratedAt time.Time                   `json:"generated_at"`
	RecentDays  int                         `json:"recent_days"`
	Sections    map[string]DashboardSection `json:"sections"`
	FailedCount int                         `json:"failed_count"`
	ElapsedMs   int64                       `json:"elapsed_ms"`
}

// Dashboard section keys.
const (
	SectionOOSItems     = "oos_items"
	SectionSupplyIssues = "supply_issues"
	SectionCoverageLoss = "coverage_loss"
	SectionSeasonal     = "seasonal_items"
	SectionAnomalies    = "anomalies"
)

// ItemHealthReport is the composite health check for a single item: basic
// trailing-12M info, multi-horizon coverage, pattern classification, its
// out-of-stock row when flagged, and the per-channel availability split.
type ItemHealthReport struct {
	ItemCode       string                 `json:"item_code"`
	ItemDesc       string                 `json:"item_desc"`
	Brand          string                 `json:"brand"`
	TotalAmount12M float64                `json:"total_amount_12m"`
	AccountCount   int64                  `json:"account_count"`
	LastSaleDate   time.Time              `json:"last_sale_date"`
	Coverage       []CoverageRecord       `json:"coverage"`
	Pattern        *PatternClassification `json:"pattern"`
	OOSRisk        *OOSCandidate          `json:"oos_risk,omitempty"`
	Channels       []ChannelAvailability  `json:"channel_distribution"`
}
