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

	"github.com/shelfwatch/shelfwatch/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		CORSAllowedMethods: []string{"GET", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type"},
		CORSMaxAge:         60,
	})
	handler := m.CORS()(okHandler())

	req := httptest.NewRequest("OPTIONS", "/api/v1/coverage", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin echoed, got %q", got)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		CORSAllowedMethods: []string{"GET"},
	})
	handler := m.CORS()(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS header for unknown origin, got %q", got)
	}
}

func TestRateLimitCustomEnforcesBudget(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(DefaultChiMiddlewareConfig())
	handler := m.RateLimitCustom(RateLimitConfig{Requests: 3, Window: time.Minute})(okHandler())

	var last *httptest.ResponseRecorder
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)

		if i < 3 && last.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200 inside budget, got %d", i+1, last.Code)
		}
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 over budget, got %d", last.Code)
	}
	if ct := last.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON rejection, got Content-Type %q", ct)
	}
	if body := last.Body.String(); !strings.Contains(body, "RATE_LIMITED") {
		t.Errorf("Expected RATE_LIMITED code in body, got %s", body)
	}
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	handler := m.RateLimitCustom(RateLimitConfig{Requests: 1, Window: time.Minute})(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected passthrough with limits disabled, got %d", i+1, rec.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	handler := SecurityHeaders()(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("Header %s: expected %q, got %q", header, value, got)
		}
	}
	if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("Expected no HSTS over plain HTTP, got %q", got)
	}
}

func TestSecurityHeadersHSTSBehindTLSProxy(t *testing.T) {
	t.Parallel()

	handler := SecurityHeaders()(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Strict-Transport-Security"); !strings.Contains(got, "max-age=") {
		t.Errorf("Expected HSTS behind TLS proxy, got %q", got)
	}
}

func TestRequestIDWithLogging(t *testing.T) {
	t.Parallel()

	var seenID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequestIDWithLogging()(inner)

	req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	headerID := rec.Header().Get("X-Request-ID")
	if headerID == "" {
		t.Fatal("Expected generated X-Request-ID header")
	}
	if seenID != headerID {
		t.Errorf("Expected context ID %q to match header %q", seenID, headerID)
	}
}

func TestRequestIDWithLoggingKeepsUpstreamID(t *testing.T) {
	t.Parallel()

	handler := RequestIDWithLogging()(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-42" {
		t.Errorf("Expected upstream ID preserved, got %q", got)
	}
}

func TestFromSecurityConfig(t *testing.T) {
	t.Parallel()

	sec := config.SecurityConfig{
		RateLimitReqs:     250,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"https://ops.example"},
	}

	cfg := FromSecurityConfig(sec)
	if cfg.RateLimitRequests != 250 {
		t.Errorf("Expected 250 requests, got %d", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("Expected 30s window, got %v", cfg.RateLimitWindow)
	}
	if !cfg.RateLimitDisabled {
		t.Error("Expected rate limiting disabled")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://ops.example" {
		t.Errorf("Expected origin carried over, got %v", cfg.CORSAllowedOrigins)
	}
	if len(cfg.CORSAllowedMethods) == 0 {
		t.Error("Expected default methods retained")
	}
}
