// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package analytics

import (
	"runtime"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/config"
	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/metrics"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

// analysisHorizonMonths is the trailing window every availability analysis
// measures history over.
const analysisHorizonMonths = 12

// defaultCompareMonths is the scope-comparison window when the caller does
// not pick one.
const defaultCompareMonths = 12

// Engine runs the analyses. It holds no mutable state; one instance serves
// all requests concurrently.
type Engine struct {
	db  *database.DB
	cfg config.AnalysisConfig
}

// NewEngine creates an analysis engine over db with the given thresholds.
func NewEngine(db *database.DB, cfg config.AnalysisConfig) *Engine {
	return &Engine{db: db, cfg: cfg}
}

// observe records one analysis invocation. Deferred with a named error so
// the duration covers the whole call including classification.
func (e *Engine) observe(analysis string, start time.Time, err *error) {
	metrics.RecordAnalysis(analysis, time.Since(start), *err)
}

// workerCount bounds fleet-scan parallelism to the configured worker count
// (default NumCPU), never more than one worker per item.
func (e *Engine) workerCount(items int) int {
	workers := e.cfg.WorkerCount
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// filterFor builds the row filter for a resolved scope.
func filterFor(s scope.Scope) *database.Filter {
	return database.NewFilter(s)
}

// orDefault returns value unless it is zero, then fallback.
func orDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

// orDefaultFloat returns value unless it is zero or negative, then fallback.
func orDefaultFloat(value, fallback float64) float64 {
	if value <= 0 {
		return fallback
	}
	return value
}
