// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/shelfwatch/shelfwatch/internal/config"
	"github.com/shelfwatch/shelfwatch/internal/metrics"
)

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
	LastSweep time.Time
}

// Cache is a thread-safe TTL cache for assembled reports. Expired entries
// are dropped lazily on Get and in bulk by the janitor's Sweep; when the
// cache is at capacity the entry closest to expiry is evicted first.
//
// Every hit, miss and eviction is mirrored to Prometheus under the cache's
// name label.
type Cache struct {
	mu        sync.Mutex
	heap      *expiryHeap
	ttl       time.Duration
	name      string
	hits      int64
	misses    int64
	evictions int64
	lastSweep time.Time
}

// New creates a cache named name for metrics purposes, with cfg's default
// TTL and entry bound. The janitor is a separate service; see NewJanitor.
func New(name string, cfg config.CacheConfig) *Cache {
	return &Cache{
		heap: newExpiryHeap(cfg.MaxEntries),
		ttl:  cfg.TTL,
		name: name,
	}
}

// Get returns the cached value for key if present and not expired. An entry
// past its deadline is removed on the spot and counted as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	e := c.heap.get(key)
	if e == nil {
		c.misses++
		c.mu.Unlock()
		metrics.RecordCacheMiss(c.name)
		return nil, false
	}

	if !e.expiresAt.After(time.Now()) {
		c.heap.remove(key)
		c.misses++
		c.evictions++
		size := c.heap.size()
		c.mu.Unlock()
		metrics.RecordCacheMiss(c.name)
		metrics.RecordCacheEviction(c.name)
		metrics.SetCacheSize(c.name, size)
		return nil, false
	}

	c.hits++
	data := e.data
	c.mu.Unlock()
	metrics.RecordCacheHit(c.name)
	return data, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL. Setting an existing
// key refreshes its deadline in place.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	evicted := c.heap.push(key, value, time.Now().Add(ttl))
	if evicted != nil {
		c.evictions++
	}
	size := c.heap.size()
	c.mu.Unlock()

	if evicted != nil {
		metrics.RecordCacheEviction(c.name)
	}
	metrics.SetCacheSize(c.name, size)
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	removed := c.heap.remove(key)
	if removed != nil {
		c.evictions++
	}
	size := c.heap.size()
	c.mu.Unlock()

	if removed != nil {
		metrics.RecordCacheEviction(c.name)
	}
	metrics.SetCacheSize(c.name, size)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	dropped := c.heap.size()
	c.heap.clear()
	c.evictions += int64(dropped)
	c.mu.Unlock()

	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(dropped))
	metrics.SetCacheSize(c.name, 0)
}

// Sweep removes every entry whose deadline is at or before now and returns
// the number removed. The janitor calls this on its interval.
func (c *Cache) Sweep(now time.Time) int {
	c.mu.Lock()
	removed := c.heap.popExpired(now)
	c.evictions += int64(removed)
	c.lastSweep = now
	size := c.heap.size()
	c.mu.Unlock()

	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(removed))
	}
	metrics.SetCacheSize(c.name, size)
	return removed
}

// Len returns the current number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.heap.size()
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Entries:   c.heap.size(),
		LastSweep: c.lastSweep,
	}
}

// HitRate returns the hit percentage over all lookups, 0 when the cache has
// never been read.
func (c *Cache) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// GenerateKey derives a stable cache key from an operation name and its
// parameters. Parameters are serialized to JSON and hashed so structurally
// equal requests share a key regardless of field ordering in the caller.
func GenerateKey(operation string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Unserializable parameters fall back to a fmt key.
		return fmt.Sprintf("%s:%v", operation, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", operation, hash[:16])
}
