// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package api

import (
	"time"

	"github.com/shelfwatch/shelfwatch/internal/analytics"
	"github.com/shelfwatch/shelfwatch/internal/cache"
	"github.com/shelfwatch/shelfwatch/internal/config"
	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

// Handler serves the analysis API. Every field is set at construction and
// read-only afterwards; one instance serves all requests concurrently.
type Handler struct {
	db        *database.DB
	engine    *analytics.Engine
	resolver  *scope.Resolver
	reports   *cache.Cache
	config    *config.Config
	version   string
	startTime time.Time
}

// NewHandler creates the API handler.
//
// Dependencies:
//   - db: DuckDB store, used directly for readiness checks and stats
//   - engine: the analysis engine every data endpoint dispatches to
//   - resolver: free-text question resolution for POST /ask
//   - reports: TTL cache for dashboard reports, swept by its Janitor
//   - cfg: application configuration
//   - version: build version reported by GET /health
func NewHandler(db *database.DB, engine *analytics.Engine, resolver *scope.Resolver, reports *cache.Cache, cfg *config.Config, version string) *Handler {
	return &Handler{
		db:        db,
		engine:    engine,
		resolver:  resolver,
		reports:   reports,
		config:    cfg,
		version:   version,
		startTime: time.Now(),
	}
}
