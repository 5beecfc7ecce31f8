// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

// Package cache provides the TTL report cache used by the dashboard
// endpoint. Dashboard reports fan out across five analyses per request, so
// repeated polling of the same brand is served from here instead of
// re-aggregating.
//
// The cache is bounded: entries are indexed by expiry deadline in a min-heap
// and the entry closest to expiring is evicted first when the bound is hit.
// A supervised Janitor sweeps expired entries between requests so memory is
// reclaimed even for keys that are never read again.
package cache
