// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package models

import (
	"time"
)

// CoverageRecord holds distinct-account coverage for one rolling window.
// Records for the same scope and reference date form a superset chain:
// a longer window can never cover fewer accounts than a shorter one.
type CoverageRecord struct {
	WindowLabel      string    `json:"window_label"` // e.g. "12M"
	Months           int       `json:"months"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"` // exclusive
	CoverageCount    int64     `json:"coverage_count"`
	TotalAmount      float64   `json:"total_amount"`
	TransactionCount int64     `json:"transaction_count"` // distinct invoices
}

// CoverageReport is the full multi-horizon coverage result for one scope.
type CoverageReport struct {
	Scope     string           `json:"scope"`
	Dimension string           `json:"dimension"` // account_name, channel or emirate
	AsOf      time.Time        `json:"as_of"`
	Windows   []CoverageRecord `json:"windows"`
}

// CoverageLossRecord describes one account (or channel, or emirate) that
// purchased during the historical window but not during the recent window.
// Aggregates cover the account's full history within the scope, and
// LastPurchaseDate is strictly before the recent-window start.
type CoverageLossRecord struct {
	Account                string    `json:"account"`
	LastPurchaseDate       time.Time `json:"last_purchase_date"`
	DaysSinceLastPurchase  int       `json:"days_since_last_purchase"`
	HistoricalAmount       float64   `json:"historical_amount"`
	HistoricalQty          int64     `json:"historical_qty"`
	HistoricalTransactions int64     `json:"historical_transactions"`
	ItemsBought            int64     `json:"items_bought"`
}

// CoverageLossReport lists historical accounts missing from the recent window,
// sorted by historical amount descending.
type CoverageLossReport struct {
	Scope            string               `json:"scope"`
	Dimension        string               `json:"dimension"`
	AsOf             time.Time            `json:"as_of"`
	RecentMonths     int                  `json:"recent_months"`
	HistoricalMonths int                  `json:"historical_months"`
	LostCount        int                  `json:"lost_count"`
	TotalLostAmount  float64              `json:"total_lost_amount"`
	Accounts         []CoverageLossRecord `json:"accounts"`
}

// AccountMovement counts account transitions between two adjacent periods of
// equal length. Identities: new + retained = recent coverage, and
// lost + retained = previous coverage.
type AccountMovement struct {
	Scope            string    `json:"scope"`
	AsOf             time.Time `json:"as_of"`
	PeriodMonths     int       `json:"period_months"`
	NewAccounts      int64     `json:"new_accounts"`
	LostAccounts     int64     `json:"lost_accounts"`
	RetainedAccounts int64     `json:"retained_accounts"`
}

// ScopeComparison compares distinct-account coverage between two scopes over
// the same window. Overlap counts accounts present in both scopes;
// ExclusiveA and ExclusiveB are each scope's coverage minus the overlap.
type ScopeComparison struct {
	ScopeA     string    `json:"scope_a"`
	ScopeB     string    `json:"scope_b"`
	AsOf       time.Time `json:"as_of"`
	Months     int       `json:"months"`
	CoverageA  int64     `json:"coverage_a"`
	CoverageB  int64     `json:"coverage_b"`
	Overlap    int64     `json:"overlap"`
	ExclusiveA int64     `json:"exclusive_a"`
	ExclusiveB int64     `json:"exclusive_b"`
}
