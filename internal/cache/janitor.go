// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package cache

import (
	"context"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/logging"
)

// Janitor sweeps a cache's expired entries on a fixed interval. It runs as a
// supervised service: Serve blocks until the context is cancelled.
type Janitor struct {
	cache    *Cache
	interval time.Duration
}

// NewJanitor creates a janitor sweeping c every interval.
func NewJanitor(c *Cache, interval time.Duration) *Janitor {
	return &Janitor{cache: c, interval: interval}
}

// Serve runs the sweep loop until ctx is cancelled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if removed := j.cache.Sweep(now); removed > 0 {
				logging.Debug().
					Str("cache", j.cache.name).
					Int("removed", removed).
					Int("remaining", j.cache.Len()).
					Msg("Swept expired cache entries")
			}
		}
	}
}

// String names the service in supervisor logs.
func (j *Janitor) String() string {
	return "cache-janitor:" + j.cache.name
}
