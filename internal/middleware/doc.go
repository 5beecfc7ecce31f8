// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

/*
Package middleware provides the HTTP middleware stack for the API server.

All middleware uses the chi-compatible func(http.Handler) http.Handler
signature so it composes with chi's own Recoverer and RealIP.

Components:

  - ChiMiddleware: CORS (go-chi/cors) and fixed-window route-group rate
    limits (go-chi/httprate) built from the security configuration
  - IPRateLimiter: token-bucket per-IP limiter (x/time/rate) applied
    globally, with stale-client cleanup
  - Prometheus: request counts, latency and in-flight gauges labeled by
    chi route pattern so path parameters do not explode cardinality
  - Compression: pooled gzip for clients that accept it
  - RequestIDWithLogging: request and correlation IDs threaded through
    both chi and the zerolog context
  - SecurityHeaders: nosniff, frame denial, referrer policy, HSTS
  - SlowRequestLog: warn-level log line for requests over a threshold

The typical stack, outermost first: Recoverer, RealIP,
RequestIDWithLogging, SecurityHeaders, Prometheus, IPRateLimiter,
Compression, then per-group httprate limits around the handlers.
*/
package middleware
