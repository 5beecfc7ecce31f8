// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package models

// Pattern labels assigned by the classifier. Display strings are part of the
// API contract; downstream planning reports key on them.
const (
	PatternStable            = "Stable"
	PatternSeasonal          = "Seasonal"
	PatternFluctuating       = "Fluctuating"
	PatternModerateVariation = "Moderate Variation"
	PatternStrangeSpike      = "Strange (Spike)"
	PatternStrangeDrop       = "Strange (Drop)"
	PatternInsufficientData  = "Insufficient Data"
)

// Stability tiers for run-rate analysis, from the coefficient of variation of
// the monthly series.
const (
	StabilityVeryStable       = "Very Stable"
	StabilityStable           = "Stable"
	StabilityModerate         = "Moderate"
	StabilityUnstable         = "Unstable"
	StabilityInsufficientData = "Insufficient Data"
)

// MonthPoint is one month of a sparse monthly sales series. Months with no
// sales are absent rather than zero-filled; the classifier operates on
// active months only.
type MonthPoint struct {
	Month    string  `json:"month"` // "2025-03"
	Amount   float64 `json:"amount"`
	Quantity int64   `json:"quantity"`
	Accounts int64   `json:"accounts"`
}

// PatternClassification is the classifier's full verdict for one item.
// Fewer than 3 active months yields Insufficient Data with zero confidence,
// never a guessed pattern. Trend is informational and does not change the
// primary label.
type PatternClassification struct {
	ItemCode            string       `json:"item_code"`
	Pattern             string       `json:"pattern"`
	PlanningImplication string       `json:"planning_implication"`
	Confidence          float64      `json:"confidence"`
	CV                  float64      `json:"cv"` // std/mean, 0 when mean <= 0
	MeanAmount          float64      `json:"mean_amount"`
	StdDev              float64      `json:"std_dev"` // population std-dev
	IsSeasonal          bool         `json:"is_seasonal"`
	SeasonalLag         int          `json:"seasonal_lag,omitempty"` // 3, 6 or 12 months
	HasAnomalies        bool         `json:"has_anomalies"`
	AnomalyCount        int          `json:"anomaly_count"`
	HasTrend            bool         `json:"has_trend"`
	TrendDirection      string       `json:"trend_direction"` // increasing, decreasing or none
	PeakMonths          []string     `json:"peak_months"`     // top calendar months, e.g. ["Dec","Nov","Jan"]
	Series              []MonthPoint `json:"series"`
}

// SeasonalItem is one row of a fleet-level seasonal scan: an item above the
// sales floor whose series tested seasonal.
type SeasonalItem struct {
	ItemCode    string   `json:"item_code"`
	ItemDesc    string   `json:"item_desc"`
	Brand       string   `json:"brand"`
	TotalAmount float64  `json:"total_amount"`
	Pattern     string   `json:"pattern"`
	PeakMonths  []string `json:"peak_months"`
	CV          float64  `json:"cv"`
	SeasonalLag int      `json:"seasonal_lag"`
}

// AnomalyEvent is a single anomalous month found by the fleet anomaly scan.
// One event per month whose standardized score exceeds the threshold.
type AnomalyEvent struct {
	ItemCode     string  `json:"item_code"`
	ItemDesc     string  `json:"item_desc"`
	Brand        string  `json:"brand"`
	Month        string  `json:"month"`
	Amount       float64 `json:"amount"`
	ZScore       float64 `json:"z_score"`
	Kind         string  `json:"kind"` // Spike or Drop
	DeviationPct float64 `json:"deviation_pct"`
}

// StabilityReport grades the run-rate stability of a whole scope (brand or
// item) from its monthly series dispersion.
type StabilityReport struct {
	Scope       string       `json:"scope"`
	Stability   string       `json:"stability"`
	Confidence  float64      `json:"confidence"`
	CV          float64      `json:"cv"`
	MeanMonthly float64      `json:"mean_monthly"`
	StdMonthly  float64      `json:"std_monthly"`
	MinMonthly  float64      `json:"min_monthly"`
	MaxMonthly  float64      `json:"max_monthly"`
	Series      []MonthPoint `json:"series"`
}
