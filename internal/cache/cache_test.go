// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/config"
)

func testCache(maxEntries int) *Cache {
	return New("test", config.CacheConfig{
		TTL:        time.Minute,
		MaxEntries: maxEntries,
	})
}

func TestCacheBasicOperations(t *testing.T) {
	c := testCache(0)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	_, exists = c.Get("key2")
	if exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := testCache(0)

	c.SetWithTTL("stale", "value", -time.Second)
	c.Set("fresh", "value")

	if _, exists := c.Get("stale"); exists {
		t.Error("Expected stale entry to be dropped on read")
	}
	if _, exists := c.Get("fresh"); !exists {
		t.Error("Expected fresh entry to survive")
	}

	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction from the expired read, got %d", stats.Evictions)
	}
	if stats.Entries != 1 {
		t.Errorf("Expected 1 remaining entry, got %d", stats.Entries)
	}
}

func TestCacheCapacityEvictsClosestToExpiry(t *testing.T) {
	c := testCache(2)

	c.SetWithTTL("soon", "a", 1*time.Minute)
	c.SetWithTTL("later", "b", 2*time.Minute)
	c.SetWithTTL("latest", "c", 3*time.Minute)

	if got := c.Len(); got != 2 {
		t.Fatalf("Expected 2 entries after capacity eviction, got %d", got)
	}
	if _, exists := c.Get("soon"); exists {
		t.Error("Expected the entry closest to expiry to be evicted")
	}
	if _, exists := c.Get("later"); !exists {
		t.Error("Expected later to survive")
	}
	if _, exists := c.Get("latest"); !exists {
		t.Error("Expected latest to survive")
	}
}

func TestCacheSetRefreshesExistingKey(t *testing.T) {
	c := testCache(2)

	c.Set("key", "old")
	c.Set("key", "new")

	if got := c.Len(); got != 1 {
		t.Fatalf("Expected refresh to keep a single entry, got %d", got)
	}
	value, _ := c.Get("key")
	if value != "new" {
		t.Errorf("Expected refreshed value, got %v", value)
	}
}

func TestCacheDelete(t *testing.T) {
	c := testCache(0)

	c.Set("key1", "value1")
	c.Delete("key1")
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}

	// Deleting an absent key is a no-op.
	c.Delete("missing")
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Expected exactly 1 eviction, got %d", got)
	}
}

func TestCacheClear(t *testing.T) {
	c := testCache(0)

	c.Set("key1", 1)
	c.Set("key2", 2)
	c.Clear()

	if got := c.Len(); got != 0 {
		t.Errorf("Expected empty cache after Clear, got %d entries", got)
	}
	if got := c.GetStats().Evictions; got != 2 {
		t.Errorf("Expected 2 evictions from Clear, got %d", got)
	}
}

func TestCacheSweep(t *testing.T) {
	c := testCache(0)

	c.SetWithTTL("dead1", 1, -2*time.Second)
	c.SetWithTTL("dead2", 2, -time.Second)
	c.Set("alive", 3)

	now := time.Now()
	removed := c.Sweep(now)
	if removed != 2 {
		t.Fatalf("Expected sweep to remove 2 entries, got %d", removed)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Expected 1 entry after sweep, got %d", got)
	}

	stats := c.GetStats()
	if !stats.LastSweep.Equal(now) {
		t.Errorf("Expected LastSweep %v, got %v", now, stats.LastSweep)
	}
	if stats.Evictions != 2 {
		t.Errorf("Expected 2 evictions recorded, got %d", stats.Evictions)
	}
}

func TestCacheStatsAndHitRate(t *testing.T) {
	c := testCache(0)

	c.Set("key", "value")
	c.Get("key")
	c.Get("key")
	c.Get("key")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 3 {
		t.Errorf("Expected 3 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if rate := c.HitRate(); rate != 75.0 {
		t.Errorf("Expected 75%% hit rate, got %.2f", rate)
	}
}

func TestCacheHitRateEmptyCache(t *testing.T) {
	c := testCache(0)
	if rate := c.HitRate(); rate != 0.0 {
		t.Errorf("Expected 0%% hit rate with no lookups, got %.2f", rate)
	}
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		Brand      string
		RecentDays int
	}

	key1 := GenerateKey("dashboard", params{Brand: "DUP", RecentDays: 30})
	key2 := GenerateKey("dashboard", params{Brand: "DUP", RecentDays: 30})
	key3 := GenerateKey("dashboard", params{Brand: "BAY", RecentDays: 30})

	if key1 != key2 {
		t.Error("Expected identical params to produce identical keys")
	}
	if key1 == key3 {
		t.Error("Expected different params to produce different keys")
	}
	if !strings.HasPrefix(key1, "dashboard:") {
		t.Errorf("Expected operation prefix, got %s", key1)
	}

	// Unserializable params fall back to a fmt key rather than failing.
	fallback := GenerateKey("dashboard", make(chan int))
	if !strings.HasPrefix(fallback, "dashboard:") {
		t.Errorf("Expected fallback key to keep the prefix, got %s", fallback)
	}
}

func TestCacheConcurrency(t *testing.T) {
	c := testCache(64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", worker, j%16)
				c.Set(key, j)
				c.Get(key)
				if j%10 == 0 {
					c.Delete(key)
				}
			}
		}(i)
	}
	wg.Wait()

	if got := c.Len(); got > 64 {
		t.Errorf("Expected entry bound to hold under concurrency, got %d", got)
	}
}

func TestJanitorServeStopsOnCancel(t *testing.T) {
	c := testCache(0)
	j := NewJanitor(c, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- j.Serve(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Janitor did not stop after cancel")
	}
}

func TestJanitorSweepsOnInterval(t *testing.T) {
	c := testCache(0)
	c.SetWithTTL("stale", "value", -time.Second)

	j := NewJanitor(c, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = j.Serve(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("Janitor never swept the expired entry")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestJanitorString(t *testing.T) {
	j := NewJanitor(testCache(0), time.Minute)
	if got := j.String(); got != "cache-janitor:test" {
		t.Errorf("Expected cache-janitor:test, got %s", got)
	}
}

func BenchmarkCacheSet(b *testing.B) {
	c := testCache(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(fmt.Sprintf("key-%d", i%1000), i)
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := testCache(0)
	for i := 0; i < 1000; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(fmt.Sprintf("key-%d", i%1000))
	}
}
