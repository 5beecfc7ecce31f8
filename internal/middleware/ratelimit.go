// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// cleanupInterval is how often stale per-IP limiters are swept; limiters
// idle longer than staleAfter are dropped.
const (
	cleanupInterval = 10 * time.Minute
	staleAfter      = time.Hour
)

// IPRateLimiter is a token-bucket limiter per client IP. Unlike the
// fixed-window group limits, it smooths bursts: each client gets the full
// window budget as burst capacity and refills at the sustained rate.
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	stopClean chan struct{}
	closeOnce sync.Once
}

// limiterEntry wraps a limiter with its last access time for cleanup.
type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewIPRateLimiter creates a limiter allowing reqs requests per window per
// IP, with the whole budget available as burst. A cleanup goroutine drops
// limiters for clients not seen in the last hour; call Stop on shutdown.
func NewIPRateLimiter(reqs int, window time.Duration) *IPRateLimiter {
	if reqs < 1 {
		reqs = 1
	}
	rl := &IPRateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Every(window / time.Duration(reqs)),
		burst:     reqs,
		stopClean: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether a request from ip fits its budget.
func (rl *IPRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{
			limiter:    rate.NewLimiter(rl.rate, rl.burst),
			lastAccess: time.Now(),
		}
		rl.limiters[ip] = entry
	} else {
		entry.lastAccess = time.Now()
	}
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.Allow()
}

// Middleware rejects requests over budget with the API's 429 shape.
// It keys on RemoteAddr, which chi's RealIP middleware has already
// resolved through X-Forwarded-For when the proxy is trusted.
func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			rateLimitExceeded(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Size returns the number of tracked client IPs.
func (rl *IPRateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Stop ends the cleanup goroutine. Idempotent.
func (rl *IPRateLimiter) Stop() {
	rl.closeOnce.Do(func() {
		close(rl.stopClean)
	})
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopClean:
			return
		}
	}
}

// cleanup removes limiters that have not been touched within staleAfter.
func (rl *IPRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	threshold := time.Now().Add(-staleAfter)
	for ip, entry := range rl.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(rl.limiters, ip)
		}
	}
}

// clientIP strips the port from RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
