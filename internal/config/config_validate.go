// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateAnalysis(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// Database limit constants
const (
	maxDatabaseThreads = 128
	minQueryTimeout    = time.Second
	maxQueryTimeout    = 10 * time.Minute
)

// validateDatabase validates DuckDB configuration
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH must not be empty (use :memory: for an in-process database)")
	}
	if c.Database.Threads < 0 || c.Database.Threads > maxDatabaseThreads {
		return fmt.Errorf("DUCKDB_THREADS must be between 0 and %d (0 = all cores)", maxDatabaseThreads)
	}
	if c.Database.QueryTimeout < minQueryTimeout || c.Database.QueryTimeout > maxQueryTimeout {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be between %v and %v", minQueryTimeout, maxQueryTimeout)
	}
	return nil
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("ENVIRONMENT must be development or production")
	}
	return nil
}

// API limit constants
const maxAPIPageSize = 10000

// validateAPI validates API configuration
func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be at least API_DEFAULT_PAGE_SIZE")
	}
	if c.API.MaxPageSize > maxAPIPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must not exceed %d", maxAPIPageSize)
	}
	return nil
}

// Cache limit constants
const (
	minCacheTTL = time.Second
	maxCacheTTL = 24 * time.Hour
)

// validateCache validates report cache configuration (only if enabled)
func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}

	if c.Cache.TTL < minCacheTTL || c.Cache.TTL > maxCacheTTL {
		return fmt.Errorf("CACHE_TTL must be between %v and %v", minCacheTTL, maxCacheTTL)
	}
	if c.Cache.CleanupInterval < minCacheTTL {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be at least %v", minCacheTTL)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must not be negative (0 = unbounded)")
	}
	return nil
}

// Analysis limit constants
const (
	maxAnalysisDays   = 365
	maxAnalysisMonths = 120
	maxWorkerCount    = 256
)

// validateAnalysis validates every analytical threshold. Misconfigured
// thresholds fail fast at startup rather than producing silently wrong
// reports.
func (c *Config) validateAnalysis() error {
	if err := c.validateAnalysisWindows(); err != nil {
		return err
	}
	if err := c.validateAnalysisThresholds(); err != nil {
		return err
	}
	if err := c.validateStabilityTiers(); err != nil {
		return err
	}
	return c.validateCoverageWindows()
}

// validateAnalysisWindows validates day and month window settings
func (c *Config) validateAnalysisWindows() error {
	a := &c.Analysis

	if a.OOSRecentDays < 1 || a.OOSRecentDays > maxAnalysisDays {
		return fmt.Errorf("ANALYSIS_OOS_RECENT_DAYS must be between 1 and %d", maxAnalysisDays)
	}
	if a.DeclineRecentDays < 1 || a.DeclineRecentDays > maxAnalysisDays {
		return fmt.Errorf("ANALYSIS_DECLINE_RECENT_DAYS must be between 1 and %d", maxAnalysisDays)
	}
	if a.DeclineHistoricalDays <= a.DeclineRecentDays {
		return fmt.Errorf("ANALYSIS_DECLINE_HISTORICAL_DAYS must exceed ANALYSIS_DECLINE_RECENT_DAYS")
	}
	if a.PatternMonths < 1 || a.PatternMonths > maxAnalysisMonths {
		return fmt.Errorf("ANALYSIS_PATTERN_MONTHS must be between 1 and %d", maxAnalysisMonths)
	}
	if a.SeasonalMonths < 1 || a.SeasonalMonths > maxAnalysisMonths {
		return fmt.Errorf("ANALYSIS_SEASONAL_MONTHS must be between 1 and %d", maxAnalysisMonths)
	}
	if a.OverstockRecentDays < 1 || a.OverstockRecentDays > maxAnalysisDays {
		return fmt.Errorf("ANALYSIS_OVERSTOCK_RECENT_DAYS must be between 1 and %d", maxAnalysisDays)
	}
	if a.OverstockSilenceDays < 1 || a.OverstockSilenceDays > maxAnalysisDays {
		return fmt.Errorf("ANALYSIS_OVERSTOCK_SILENCE_DAYS must be between 1 and %d", maxAnalysisDays)
	}
	if a.LossRecentMonths < 1 || a.LossRecentMonths > maxAnalysisMonths {
		return fmt.Errorf("ANALYSIS_LOSS_RECENT_MONTHS must be between 1 and %d", maxAnalysisMonths)
	}
	if a.LossHistoricalMonths <= a.LossRecentMonths {
		return fmt.Errorf("ANALYSIS_LOSS_HISTORICAL_MONTHS must exceed ANALYSIS_LOSS_RECENT_MONTHS")
	}
	if a.MovementPeriodMonths < 1 || a.MovementPeriodMonths > maxAnalysisMonths {
		return fmt.Errorf("ANALYSIS_MOVEMENT_PERIOD_MONTHS must be between 1 and %d", maxAnalysisMonths)
	}
	if a.WorkerCount < 0 || a.WorkerCount > maxWorkerCount {
		return fmt.Errorf("ANALYSIS_WORKER_COUNT must be between 0 and %d (0 = all cores)", maxWorkerCount)
	}
	return nil
}

// validateAnalysisThresholds validates ratio, correlation, and z-score settings
func (c *Config) validateAnalysisThresholds() error {
	a := &c.Analysis

	if a.OOSMinHistorical < 0 {
		return fmt.Errorf("ANALYSIS_OOS_MIN_HISTORICAL must not be negative")
	}
	if a.OOSRatio <= 0 || a.OOSRatio >= 1 {
		return fmt.Errorf("ANALYSIS_OOS_RATIO must be between 0 and 1 (exclusive)")
	}
	if a.StoppageMinAccounts < 1 {
		return fmt.Errorf("ANALYSIS_STOPPAGE_MIN_ACCOUNTS must be at least 1")
	}
	if a.AnomalyZScore <= 0 {
		return fmt.Errorf("ANALYSIS_ANOMALY_Z_SCORE must be positive")
	}
	if a.SeasonalCorrelation <= 0 || a.SeasonalCorrelation >= 1 {
		return fmt.Errorf("ANALYSIS_SEASONAL_CORRELATION must be between 0 and 1 (exclusive)")
	}
	if a.CVStable <= 0 {
		return fmt.Errorf("ANALYSIS_CV_STABLE must be positive")
	}
	if a.CVFluctuating <= a.CVStable {
		return fmt.Errorf("ANALYSIS_CV_FLUCTUATING must exceed ANALYSIS_CV_STABLE")
	}
	if a.TrendCorrelation <= 0 || a.TrendCorrelation >= 1 {
		return fmt.Errorf("ANALYSIS_TREND_CORRELATION must be between 0 and 1 (exclusive)")
	}
	if a.TrendPValue <= 0 || a.TrendPValue >= 1 {
		return fmt.Errorf("ANALYSIS_TREND_P_VALUE must be between 0 and 1 (exclusive)")
	}
	if a.SeasonalMinTotal < 0 {
		return fmt.Errorf("ANALYSIS_SEASONAL_MIN_TOTAL must not be negative")
	}
	if a.OverstockLoadFactor <= 1 {
		return fmt.Errorf("ANALYSIS_OVERSTOCK_LOAD_FACTOR must exceed 1")
	}
	return nil
}

// validateStabilityTiers validates that the CV tier bounds are strictly increasing
func (c *Config) validateStabilityTiers() error {
	a := &c.Analysis

	if a.StabilityVeryStable <= 0 {
		return fmt.Errorf("ANALYSIS_STABILITY_VERY_STABLE must be positive")
	}
	if a.StabilityStable <= a.StabilityVeryStable {
		return fmt.Errorf("ANALYSIS_STABILITY_STABLE must exceed ANALYSIS_STABILITY_VERY_STABLE")
	}
	if a.StabilityModerate <= a.StabilityStable {
		return fmt.Errorf("ANALYSIS_STABILITY_MODERATE must exceed ANALYSIS_STABILITY_STABLE")
	}
	return nil
}

// validateCoverageWindows validates the default coverage window list.
// Windows must be strictly increasing so multi-window reports stay monotone.
func (c *Config) validateCoverageWindows() error {
	windows := c.Analysis.CoverageWindows
	if len(windows) == 0 {
		return fmt.Errorf("ANALYSIS_COVERAGE_WINDOWS must not be empty")
	}
	for i, w := range windows {
		if w < 1 || w > maxAnalysisMonths {
			return fmt.Errorf("ANALYSIS_COVERAGE_WINDOWS entries must be between 1 and %d months", maxAnalysisMonths)
		}
		if i > 0 && w <= windows[i-1] {
			return fmt.Errorf("ANALYSIS_COVERAGE_WINDOWS must be strictly increasing")
		}
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates rate limiting and CORS configuration
func (c *Config) validateSecurity() error {
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateCORS()
}

// validateRateLimits validates rate limiting configuration bounds.
// Ensures rate limit values are within sensible ranges to prevent
// misconfiguration that could lead to DoS or ineffective protection.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateCORS validates CORS configuration. Production deployments must
// name their origins; a wildcard origin exposes every report to any site.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// IsProduction returns true when the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment returns true when the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
