// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment variables and config files.
// Provides centralized configuration management for all application components including
// the database, HTTP server, API, report cache, analysis thresholds, security, and logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Cache    CacheConfig    `koanf:"cache"`
	Analysis AnalysisConfig `koanf:"analysis"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig contains DuckDB configuration.
// DuckDB is the single embedded store: the sales relation, all aggregation
// queries, and the seed data all live in one database file.
type DatabaseConfig struct {
	// Path is the database file path.
	// Environment variable: DUCKDB_PATH (or DB_PATH). Use ":memory:" for an
	// in-process database that is discarded on exit.
	Path string `koanf:"path"`

	// MaxMemory sets DuckDB's memory limit (e.g. "2GB").
	// Environment variable: DUCKDB_MAX_MEMORY
	MaxMemory string `koanf:"max_memory"`

	// Threads sets DuckDB's thread count. 0 means runtime.NumCPU().
	// Environment variable: DUCKDB_THREADS
	Threads int `koanf:"threads"`

	// PreserveInsertionOrder controls DuckDB's preserve_insertion_order pragma.
	// Disabling it reduces memory pressure on large imports at the cost of
	// unordered unqualified scans; every analytical query here carries an
	// explicit ORDER BY, so it is safe to turn off.
	// Environment variable: PRESERVE_INSERTION_ORDER
	PreserveInsertionOrder bool `koanf:"preserve_insertion_order"`

	// SeedDemoData loads a synthetic sales dataset on startup when the
	// sales relation is empty. Intended for demos and local development.
	// Environment variable: SEED_DEMO_DATA
	SeedDemoData bool `koanf:"seed_demo_data"`

	// QueryTimeout bounds every analytical query. Queries exceeding it are
	// cancelled through their context and surface as DataAccessError.
	// Environment variable: DB_QUERY_TIMEOUT
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP listen port.
	// Environment variable: HTTP_PORT
	Port int `koanf:"port"`

	// Host is the bind address.
	// Environment variable: HTTP_HOST
	Host string `koanf:"host"`

	// Timeout applies to both reads and writes.
	// Environment variable: HTTP_TIMEOUT
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production". Production tightens
	// validation (e.g. wildcard CORS rejection).
	// Environment variable: ENVIRONMENT
	Environment string `koanf:"environment"`
}

// APIConfig contains API behavior configuration
type APIConfig struct {
	// DefaultPageSize is the page size when a request omits limit.
	// Environment variable: API_DEFAULT_PAGE_SIZE
	DefaultPageSize int `koanf:"default_page_size"`

	// MaxPageSize caps any requested limit.
	// Environment variable: API_MAX_PAGE_SIZE
	MaxPageSize int `koanf:"max_page_size"`
}

// CacheConfig controls the in-memory report cache used by the dashboard
// endpoint. Reports are expensive fan-out aggregations; the cache keeps the
// dashboard responsive under repeated polling.
type CacheConfig struct {
	// Enabled toggles report caching entirely.
	// Environment variable: CACHE_ENABLED
	Enabled bool `koanf:"enabled"`

	// TTL is how long a cached report stays fresh.
	// Environment variable: CACHE_TTL
	TTL time.Duration `koanf:"ttl"`

	// CleanupInterval is how often the janitor sweeps expired entries.
	// Environment variable: CACHE_CLEANUP_INTERVAL
	CleanupInterval time.Duration `koanf:"cleanup_interval"`

	// MaxEntries bounds the cache size. 0 means unbounded.
	// Environment variable: CACHE_MAX_ENTRIES
	MaxEntries int `koanf:"max_entries"`
}

// AnalysisConfig holds every analytical threshold the engine consults.
// The values shipped as defaults reproduce the reference behavior; each one
// is an operator-tunable default, not an invariant. Request parameters, where
// an endpoint accepts them, override these per call.
type AnalysisConfig struct {
	// OOSRecentDays is the trailing window treated as "recent" by the OOS
	// detector. Environment variable: ANALYSIS_OOS_RECENT_DAYS
	OOSRecentDays int `koanf:"oos_recent_days"`

	// OOSMinHistorical is the materiality floor on trailing-12M amount below
	// which items are never flagged. Environment variable: ANALYSIS_OOS_MIN_HISTORICAL
	OOSMinHistorical float64 `koanf:"oos_min_historical"`

	// OOSRatio flags an item when recent sales fall below this fraction of
	// its average monthly run rate. Environment variable: ANALYSIS_OOS_RATIO
	OOSRatio float64 `koanf:"oos_ratio"`

	// StoppageMinAccounts is the minimum number of simultaneously stopped
	// accounts before an item counts as a multi-account stoppage.
	// Environment variable: ANALYSIS_STOPPAGE_MIN_ACCOUNTS
	StoppageMinAccounts int `koanf:"stoppage_min_accounts"`

	// DeclineRecentDays / DeclineHistoricalDays define the two comparison
	// bands for decline-cause classification: trailing DeclineRecentDays vs
	// the band from DeclineHistoricalDays ago up to the recent cutoff.
	// Environment variables: ANALYSIS_DECLINE_RECENT_DAYS, ANALYSIS_DECLINE_HISTORICAL_DAYS
	DeclineRecentDays     int `koanf:"decline_recent_days"`
	DeclineHistoricalDays int `koanf:"decline_historical_days"`

	// PatternMonths is the default series length for pattern classification.
	// Environment variable: ANALYSIS_PATTERN_MONTHS
	PatternMonths int `koanf:"pattern_months"`

	// AnomalyZScore is the |z| threshold above which a month is anomalous.
	// Environment variable: ANALYSIS_ANOMALY_Z_SCORE
	AnomalyZScore float64 `koanf:"anomaly_z_score"`

	// SeasonalCorrelation is the autocorrelation threshold for seasonality.
	// Environment variable: ANALYSIS_SEASONAL_CORRELATION
	SeasonalCorrelation float64 `koanf:"seasonal_correlation"`

	// CVStable / CVFluctuating are the coefficient-of-variation cutoffs for
	// the Stable and Fluctuating pattern labels. Series between them are
	// labeled Moderate Variation.
	// Environment variables: ANALYSIS_CV_STABLE, ANALYSIS_CV_FLUCTUATING
	CVStable      float64 `koanf:"cv_stable"`
	CVFluctuating float64 `koanf:"cv_fluctuating"`

	// TrendCorrelation / TrendPValue gate trend detection: a trend is
	// reported iff |r| > TrendCorrelation and p < TrendPValue.
	// Environment variables: ANALYSIS_TREND_CORRELATION, ANALYSIS_TREND_P_VALUE
	TrendCorrelation float64 `koanf:"trend_correlation"`
	TrendPValue      float64 `koanf:"trend_p_value"`

	// SeasonalMonths and SeasonalMinTotal shape the seasonal fleet scan:
	// items below the total-amount floor over the window are not classified.
	// Environment variables: ANALYSIS_SEASONAL_MONTHS, ANALYSIS_SEASONAL_MIN_TOTAL
	SeasonalMonths   int     `koanf:"seasonal_months"`
	SeasonalMinTotal float64 `koanf:"seasonal_min_total"`

	// Stability tier upper bounds on CV, checked in order:
	// < VeryStable, < Stable, < Moderate, else Unstable.
	// Environment variables: ANALYSIS_STABILITY_VERY_STABLE, ANALYSIS_STABILITY_STABLE,
	// ANALYSIS_STABILITY_MODERATE
	StabilityVeryStable float64 `koanf:"stability_very_stable"`
	StabilityStable     float64 `koanf:"stability_stable"`
	StabilityModerate   float64 `koanf:"stability_moderate"`

	// Overstock detection: an account is overloaded when its buy over the
	// trailing OverstockRecentDays exceeds OverstockLoadFactor times its
	// pro-rated monthly run rate while its last purchase is at least
	// OverstockSilenceDays old.
	// Environment variables: ANALYSIS_OVERSTOCK_RECENT_DAYS,
	// ANALYSIS_OVERSTOCK_LOAD_FACTOR, ANALYSIS_OVERSTOCK_SILENCE_DAYS
	OverstockRecentDays  int     `koanf:"overstock_recent_days"`
	OverstockLoadFactor  float64 `koanf:"overstock_load_factor"`
	OverstockSilenceDays int     `koanf:"overstock_silence_days"`

	// CoverageWindows is the default set of trailing windows, in months,
	// reported by the coverage endpoint. Must be strictly increasing.
	// Environment variable: ANALYSIS_COVERAGE_WINDOWS (comma-separated)
	CoverageWindows []int `koanf:"coverage_windows"`

	// LossRecentMonths / LossHistoricalMonths are the default comparison
	// windows for coverage-loss detection.
	// Environment variables: ANALYSIS_LOSS_RECENT_MONTHS, ANALYSIS_LOSS_HISTORICAL_MONTHS
	LossRecentMonths     int `koanf:"loss_recent_months"`
	LossHistoricalMonths int `koanf:"loss_historical_months"`

	// MovementPeriodMonths is the default period length for account movement.
	// Environment variable: ANALYSIS_MOVEMENT_PERIOD_MONTHS
	MovementPeriodMonths int `koanf:"movement_period_months"`

	// WorkerCount bounds fleet-scan parallelism. 0 means runtime.NumCPU().
	// Environment variable: ANALYSIS_WORKER_COUNT
	WorkerCount int `koanf:"worker_count"`
}

// SecurityConfig contains rate limiting and CORS configuration
type SecurityConfig struct {
	// RateLimitReqs is the request budget per window per client IP.
	// Environment variable: RATE_LIMIT_REQUESTS
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window duration.
	// Environment variable: RATE_LIMIT_WINDOW
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled turns off rate limiting entirely.
	// Environment variable: DISABLE_RATE_LIMIT
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`

	// CORSOrigins lists allowed origins. Wildcard is rejected in production.
	// Environment variable: CORS_ORIGINS (comma-separated)
	CORSOrigins []string `koanf:"cors_origins"`

	// TrustedProxies lists proxies whose X-Forwarded-For is honored for
	// client IP resolution. Environment variable: TRUSTED_PROXIES
	TrustedProxies []string `koanf:"trusted_proxies"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	// Environment variable: LOG_LEVEL
	Level string `koanf:"level"`

	// Format is "json" or "console".
	// Environment variable: LOG_FORMAT
	Format string `koanf:"format"`

	// Caller adds file:line to every log event.
	// Environment variable: LOG_CALLER
	Caller bool `koanf:"caller"`
}

// Load loads and validates the application configuration.
// It is a thin alias for LoadWithKoanf kept for call-site readability.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
