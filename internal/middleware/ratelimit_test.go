// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestIPRateLimiterAllow(t *testing.T) {
	t.Parallel()

	rl := NewIPRateLimiter(3, time.Hour)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("Request %d: expected burst budget to allow", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Expected 4th request to be rejected")
	}

	// A different client has its own bucket.
	if !rl.Allow("10.0.0.2") {
		t.Error("Expected independent budget per IP")
	}
}

func TestIPRateLimiterMiddleware(t *testing.T) {
	t.Parallel()

	rl := NewIPRateLimiter(2, time.Hour)
	defer rl.Stop()
	handler := rl.Middleware(okHandler())

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
		req.RemoteAddr = "198.51.100.7:4411"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 after budget, got %d", last.Code)
	}
	if !strings.Contains(last.Body.String(), "RATE_LIMITED") {
		t.Errorf("Expected RATE_LIMITED body, got %s", last.Body.String())
	}

	// Another client is unaffected.
	req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
	req.RemoteAddr = "198.51.100.8:4411"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected fresh client to pass, got %d", rec.Code)
	}
}

func TestIPRateLimiterRefills(t *testing.T) {
	t.Parallel()

	// 50 requests per second refills a token every 20ms.
	rl := NewIPRateLimiter(50, time.Second)
	defer rl.Stop()

	for i := 0; i < 50; i++ {
		rl.Allow("10.0.0.3")
	}
	if rl.Allow("10.0.0.3") {
		t.Fatal("Expected bucket drained")
	}

	time.Sleep(50 * time.Millisecond)
	if !rl.Allow("10.0.0.3") {
		t.Error("Expected a refilled token after the sustained-rate interval")
	}
}

func TestIPRateLimiterCleanup(t *testing.T) {
	t.Parallel()

	rl := NewIPRateLimiter(10, time.Minute)
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	if got := rl.Size(); got != 2 {
		t.Fatalf("Expected 2 tracked clients, got %d", got)
	}

	// Age one client beyond the staleness threshold.
	rl.mu.Lock()
	rl.limiters["10.0.0.1"].lastAccess = time.Now().Add(-2 * staleAfter)
	rl.mu.Unlock()

	rl.cleanup()
	if got := rl.Size(); got != 1 {
		t.Errorf("Expected stale client dropped, got %d tracked", got)
	}
}

func TestIPRateLimiterStopIdempotent(t *testing.T) {
	t.Parallel()

	rl := NewIPRateLimiter(10, time.Minute)
	rl.Stop()
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"no-port-here", "no-port-here"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = tt.remoteAddr
		if got := clientIP(req); got != tt.want {
			t.Errorf("clientIP(%q): expected %q, got %q", tt.remoteAddr, tt.want, got)
		}
	}
}
