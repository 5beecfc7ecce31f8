// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/shelfwatch/config.yaml",
	"/etc/shelfwatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns the built-in configuration before any file or environment
// overrides are applied. Each call returns a fresh copy.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
// The analysis defaults reproduce the reference thresholds exactly.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:                   "/data/shelfwatch.duckdb",
			MaxMemory:              "2GB",
			Threads:                0, // 0 = use runtime.NumCPU()
			PreserveInsertionOrder: false,
			SeedDemoData:           false,
			QueryTimeout:           30 * time.Second,
		},
		Server: ServerConfig{
			Port:        1248,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development", // Set ENVIRONMENT=production for production checks
		},
		API: APIConfig{
			DefaultPageSize: 50,
			MaxPageSize:     500,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
			MaxEntries:      1024,
		},
		Analysis: AnalysisConfig{
			OOSRecentDays:    30,
			OOSMinHistorical: 10000,
			OOSRatio:         0.3,

			StoppageMinAccounts: 5,

			DeclineRecentDays:     30,
			DeclineHistoricalDays: 90,

			PatternMonths:       12,
			AnomalyZScore:       2.5,
			SeasonalCorrelation: 0.7,
			CVStable:            0.2,
			CVFluctuating:       0.5,
			TrendCorrelation:    0.7,
			TrendPValue:         0.05,

			SeasonalMonths:   24,
			SeasonalMinTotal: 50000,

			StabilityVeryStable: 0.15,
			StabilityStable:     0.30,
			StabilityModerate:   0.50,

			OverstockRecentDays:  90,
			OverstockLoadFactor:  2.0,
			OverstockSilenceDays: 30,

			CoverageWindows:      []int{12, 24, 36, 48},
			LossRecentMonths:     12,
			LossHistoricalMonths: 24,
			MovementPeriodMonths: 12,

			WorkerCount: 0, // 0 = use runtime.NumCPU()
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// HTTP_PORT -> server.port
	// ANALYSIS_OOS_RATIO -> analysis.oos_ratio
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
	"analysis.coverage_windows",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
// Numeric slices (analysis.coverage_windows) rely on koanf's weakly typed unmarshal
// to convert the split strings to ints.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file or defaults), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		if _, ok := val.([]int); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// It maps flat operator-facing variable names onto the nested configuration
// structure.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
//   - ANALYSIS_OOS_RATIO -> analysis.oos_ratio
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	// Map environment variable names to config sections
	envMappings := map[string]string{
		// Database mappings (DB_PATH kept as a shorter alias)
		"duckdb_path":              "database.path",
		"db_path":                  "database.path",
		"duckdb_max_memory":        "database.max_memory",
		"duckdb_threads":           "database.threads",
		"preserve_insertion_order": "database.preserve_insertion_order",
		"seed_demo_data":           "database.seed_demo_data",
		"db_query_timeout":         "database.query_timeout",

		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",

		// Cache mappings
		"cache_enabled":          "cache.enabled",
		"cache_ttl":              "cache.ttl",
		"cache_cleanup_interval": "cache.cleanup_interval",
		"cache_max_entries":      "cache.max_entries",

		// Analysis mappings
		"analysis_oos_recent_days":         "analysis.oos_recent_days",
		"analysis_oos_min_historical":      "analysis.oos_min_historical",
		"analysis_oos_ratio":               "analysis.oos_ratio",
		"analysis_stoppage_min_accounts":   "analysis.stoppage_min_accounts",
		"analysis_decline_recent_days":     "analysis.decline_recent_days",
		"analysis_decline_historical_days": "analysis.decline_historical_days",
		"analysis_pattern_months":          "analysis.pattern_months",
		"analysis_anomaly_z_score":         "analysis.anomaly_z_score",
		"analysis_seasonal_correlation":    "analysis.seasonal_correlation",
		"analysis_cv_stable":               "analysis.cv_stable",
		"analysis_cv_fluctuating":          "analysis.cv_fluctuating",
		"analysis_trend_correlation":       "analysis.trend_correlation",
		"analysis_trend_p_value":           "analysis.trend_p_value",
		"analysis_seasonal_months":         "analysis.seasonal_months",
		"analysis_seasonal_min_total":      "analysis.seasonal_min_total",
		"analysis_stability_very_stable":   "analysis.stability_very_stable",
		"analysis_stability_stable":        "analysis.stability_stable",
		"analysis_stability_moderate":      "analysis.stability_moderate",
		"analysis_overstock_recent_days":   "analysis.overstock_recent_days",
		"analysis_overstock_load_factor":   "analysis.overstock_load_factor",
		"analysis_overstock_silence_days":  "analysis.overstock_silence_days",
		"analysis_coverage_windows":        "analysis.coverage_windows",
		"analysis_loss_recent_months":      "analysis.loss_recent_months",
		"analysis_loss_historical_months":  "analysis.loss_historical_months",
		"analysis_movement_period_months":  "analysis.movement_period_months",
		"analysis_worker_count":            "analysis.worker_count",

		// Security mappings
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",
		"trusted_proxies":     "security.trusted_proxies",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// GetKoanfInstance returns a new Koanf instance for advanced usage.
// This is useful for:
//   - Hot-reload scenarios (with proper mutex protection)
//   - Custom configuration sources
//   - Testing with mock configurations
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// Note: The caller is responsible for mutex protection when accessing
// configuration during reloads.
//
// Example usage:
//
//	var cfgMu sync.RWMutex
//	var cfg *Config
//
//	err := WatchConfigFile(configPath, func() {
//	    cfgMu.Lock()
//	    defer cfgMu.Unlock()
//	    newCfg, err := LoadWithKoanf()
//	    if err != nil {
//	        logging.Error().Err(err).Msg("Config reload failed")
//	        return
//	    }
//	    cfg = newCfg
//	})
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	// Start watching the file for changes
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
