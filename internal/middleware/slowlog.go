// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package middleware

import (
	"net/http"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/logging"
)

// SlowRequestLog warns about requests slower than threshold. Latency
// distributions live in Prometheus; this exists so an individual slow
// dashboard request shows up in the log with its request ID attached.
func SlowRequestLog(threshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			if elapsed >= threshold {
				logging.Ctx(r.Context()).Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", rec.statusCode).
					Dur("elapsed", elapsed).
					Dur("threshold", threshold).
					Msg("Slow request")
			}
		})
	}
}
