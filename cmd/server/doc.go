// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

/*
Package main is the entry point for the Shelfwatch server application.

Shelfwatch is a self-hosted analytics service for distributor sales history.
It answers the operational questions a supply team asks every week - which
accounts does a brand cover, which items look out of stock, which accounts
stopped ordering, which items are seasonal - from a single immutable sales
relation stored in DuckDB.

# Application Architecture

The server implements a layered architecture with Suture v4 process supervision:

	RootSupervisor ("shelfwatch")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Report cache janitor (TTL sweeps)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST API + Swagger)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB with the sales schema (optional demo seed)
 4. Analysis Engine: coverage, availability, pattern and report analyses
 5. Scope Resolver: free-text question resolution over the catalog
 6. Report Cache: TTL cache for assembled dashboards
 7. Supervisor Tree: Suture v4 process supervision
 8. HTTP Server: Chi router with middleware stack

The analysis engine itself is stateless and unsupervised; every analysis is
a request-scoped computation over the database.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=1248               # HTTP server port
	HTTP_HOST=0.0.0.0
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Database
	DUCKDB_PATH=/data/shelfwatch.duckdb
	DUCKDB_MAX_MEMORY=2GB
	SEED_DEMO_DATA=false         # Seed a synthetic dataset on first start

	# Analysis thresholds (defaults shown)
	ANALYSIS_OOS_RATIO=0.3
	ANALYSIS_ANOMALY_Z_SCORE=2.5
	ANALYSIS_STOPPAGE_MIN_ACCOUNTS=5

	# Cache
	CACHE_ENABLED=true
	CACHE_TTL=5m

See config.yaml.example for the complete configuration reference.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (10s timeout)
 3. Stops the report cache janitor
 4. Closes the database
 5. Reports any services that failed to stop

# Usage Examples

Development with the synthetic demo dataset:

	export SEED_DEMO_DATA=true
	export DUCKDB_PATH=./shelfwatch.duckdb
	go run ./cmd/server

Production over an existing sales database:

	export DUCKDB_PATH=/data/shelfwatch.duckdb
	export LOG_FORMAT=json
	./shelfwatch

Docker:

	docker run -d \
	  -e SEED_DEMO_DATA=true \
	  -v shelfwatch-data:/data \
	  -p 1248:1248 \
	  ghcr.io/shelfwatch/shelfwatch

# API Documentation

Swagger documentation is available at /swagger/index.html when the server
is running. The API is organized into categories:

  - Health: liveness, readiness, service health
  - Coverage: rolling-window coverage, coverage loss, account movement
  - Availability: out-of-stock candidates, channel availability, stoppages,
    decline causes, impact estimates, overstock risk
  - Patterns: per-item classification, seasonal scan, anomalies, stability
  - Reports: item health, brand dashboard
  - Ask: free-text question resolution

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/analytics: Analysis engine
*/
package main
