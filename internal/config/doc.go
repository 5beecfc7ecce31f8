// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

/*
Package config provides centralized configuration management for Shelfwatch.

This package handles loading, validation, and parsing of configuration for
all application components. It ensures consistent configuration across the
backend services and provides sensible defaults for every setting, so a
bare `shelfwatch` start works against a local DuckDB file with no
environment at all.

# Configuration Sources

Configuration is loaded with Koanf v2 in three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML config file (CONFIG_PATH, ./config.yaml, /etc/shelfwatch/)
 3. Environment variables (envTransformFunc mapping)

# Configuration Structure

The package organizes configuration into logical groups:

  - DatabaseConfig: DuckDB connection and performance tuning
  - ServerConfig: HTTP server settings (host, port, timeout, environment)
  - APIConfig: Pagination and response limits
  - CacheConfig: Dashboard report cache (TTL, janitor interval)
  - AnalysisConfig: Every analytical threshold (OOS windows, CV cutoffs,
    z-score limits, coverage windows) so operators can tune detection
    sensitivity without a rebuild
  - SecurityConfig: Rate limiting and CORS
  - LoggingConfig: Log levels and output formats

# Environment Variables

Key variables by component:

Database:
  - DUCKDB_PATH / DB_PATH: Database file path (default: /data/shelfwatch.duckdb)
  - DUCKDB_MAX_MEMORY: Memory limit (default: 2GB)
  - DB_QUERY_TIMEOUT: Per-query timeout (default: 30s)

Server:
  - HTTP_PORT: Listen port (default: 1248)
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - ENVIRONMENT: development or production (default: development)

Analysis (all thresholds are tunable; see AnalysisConfig):
  - ANALYSIS_OOS_RECENT_DAYS, ANALYSIS_OOS_RATIO, ANALYSIS_ANOMALY_Z_SCORE,
    ANALYSIS_COVERAGE_WINDOWS, ANALYSIS_SEASONAL_MIN_TOTAL, ...

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
*/
package config
