// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package models

import (
	"time"
)

// RiskLevel grades an out-of-stock candidate.
type RiskLevel string

// Risk levels. Low exists for grading but is never emitted as a candidate:
// an item either crosses the candidate ratio (High or Medium) or is absent
// from the result.
const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// OOSCandidate is an item whose recent sales collapsed against its own
// historical run rate, flagging a probable out-of-stock rather than demand
// loss. AvgMonthlyAmount divides historical amount by the number of months
// that actually had sales, so intermittent items are not diluted by silent
// months.
type OOSCandidate struct {
	ItemCode               string    `json:"item_code"`
	ItemDesc               string    `json:"item_desc"`
	Brand                  string    `json:"brand"`
	HistoricalAmount       float64   `json:"historical_amount"`
	HistoricalQty          int64     `json:"historical_qty"`
	HistoricalTransactions int64     `json:"historical_transactions"`
	AffectedAccounts       int64     `json:"affected_accounts"`
	AvgMonthlyAmount       float64   `json:"avg_monthly_amount"`
	RecentAmount           float64   `json:"recent_amount"`
	LastSaleDate           time.Time `json:"last_sale_date"`
	DaysSinceLastSale      int       `json:"days_since_last_sale"`
	RiskLevel              RiskLevel `json:"risk_level"`
	ForecastSuggestion     string    `json:"forecast_suggestion"`
}

// OOSReport lists out-of-stock candidates for a scope, sorted by historical
// amount descending.
type OOSReport struct {
	Scope         string         `json:"scope"`
	AsOf          time.Time      `json:"as_of"`
	RecentDays    int            `json:"recent_days"`
	MinHistorical float64        `json:"min_historical"`
	Candidates    []OOSCandidate `json:"candidates"`
}

// DeclineCause labels the diagnosed cause of an item's sales decline.
type DeclineCause string

// Decline causes, evaluated as an ordered rule list (first match wins).
const (
	DeclineSupplyHighProbability    DeclineCause = "Supply-Driven (High Probability OOS)"
	DeclineSupplyWidespreadStoppage DeclineCause = "Supply-Driven (Widespread Stoppage)"
	DeclineDemandDeclining          DeclineCause = "Demand-Driven (Declining Trend)"
	DeclineInconclusive             DeclineCause = "Inconclusive"
	DeclineNoData                   DeclineCause = "Unknown"
)

// DeclineClassification diagnoses whether an item's decline is supply-driven
// (availability failure) or demand-driven (genuine loss of demand).
type DeclineClassification struct {
	ItemCode           string       `json:"item_code"`
	Cause              DeclineCause `json:"cause"`
	Detail             string       `json:"detail"`
	RecentAmount       float64      `json:"recent_amount"`
	HistoricalAmount   float64      `json:"historical_amount"`
	RecentAccounts     int64        `json:"recent_accounts"`
	HistoricalAccounts int64        `json:"historical_accounts"`
}

// ChannelAvailability reports one channel's recent vs historical sales for a
// single item. OOSRisk flags channels that sold historically but not
// recently; selling in some channels while dead in others points at a
// channel-local availability gap.
type ChannelAvailability struct {
	Channel            string  `json:"channel"`
	RecentAmount       float64 `json:"recent_amount"`
	HistoricalAmount   float64 `json:"historical_amount"`
	RecentAccounts     int64   `json:"recent_accounts"`
	HistoricalAccounts int64   `json:"historical_accounts"`
	OOSRisk            bool    `json:"oos_risk"`
	DropPct            float64 `json:"drop_pct"` // rounded to 2 decimals
}

// StoppageAlert flags an item that several accounts stopped buying at around
// the same time, a strong supply-side signal.
type StoppageAlert struct {
	ItemCode        string    `json:"item_code"`
	ItemDesc        string    `json:"item_desc"`
	Brand           string    `json:"brand"`
	StoppedAccounts int64     `json:"stopped_accounts"`
	MostRecentStop  time.Time `json:"most_recent_stop"`
	LostAmount      float64   `json:"lost_amount"` // the stopped accounts' trailing-12M activity
}

// OOSImpact estimates revenue lost to a stock-out using the item's average
// per-sale-day amount over the trailing twelve months.
type OOSImpact struct {
	ItemCode            string  `json:"item_code"`
	OOSDays             int     `json:"oos_days"`
	AvgDailyAmount      float64 `json:"avg_daily_amount"`
	EstimatedLostAmount float64 `json:"estimated_lost_amount"`
	AffectedAccounts    int64   `json:"affected_accounts"`
	AnnualAmount        float64 `json:"annual_amount"`
}

// OverstockAccount flags an account whose recent purchases run well above its
// monthly run rate while subsequent orders went quiet, the classic pattern of
// a loaded-up account that will not reorder soon.
type OverstockAccount struct {
	Account          string    `json:"account"`
	AvgMonthlyAmount float64   `json:"avg_monthly_amount"`
	RecentAmount     float64   `json:"recent_amount"`
	LastPurchaseDate time.Time `json:"last_purchase_date"`
	LoadIndex        float64   `json:"load_index"` // recent buy vs pro-rated run rate
}
