// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/shelfwatch/shelfwatch/internal/logging"
	"github.com/shelfwatch/shelfwatch/internal/models"
)

// APIResponse is the envelope every endpoint answers with. Data and Error
// are mutually exclusive: exactly one is set.
type APIResponse struct {
	// Success indicates whether the request was served
	Success bool `json:"success"`

	// Data contains the response payload (null on error)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (null on success)
	Error *APIError `json:"error,omitempty"`

	// Meta describes the response itself
	Meta *APIMeta `json:"meta,omitempty"`
}

// APIError represents an error response.
type APIError struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains additional error details (optional)
	Details interface{} `json:"details,omitempty"`

	// RequestID is the request ID for tracing
	RequestID string `json:"request_id,omitempty"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	// RequestID is the unique request identifier for tracing
	RequestID string `json:"request_id,omitempty"`

	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp"`

	// DurationMs is the request processing time in milliseconds
	DurationMs int64 `json:"duration_ms"`

	// Cached marks responses served from the report cache
	Cached bool `json:"cached,omitempty"`
}

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeInvalidParameter   = "INVALID_PARAMETER"
	ErrCodeValidationFailed   = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// sanitizeLogValue replaces control characters (0x00-0x1F, 0x7F) with a safe
// representation so request-derived strings cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends the envelope with proper headers. Success bodies carry
// an ETag and a short public cache lifetime so dashboards can revalidate;
// errors are never cacheable.
func respondJSON(w http.ResponseWriter, status int, response *APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if status == http.StatusOK {
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Header().Set("ETag", generateETag(data))
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondData wraps data in a success envelope stamped with the request ID
// and elapsed time.
func respondData(w http.ResponseWriter, r *http.Request, start time.Time, data interface{}) {
	respondDataCached(w, r, start, data, false)
}

// respondDataCached is respondData with the cache marker set for responses
// served from the report cache.
func respondDataCached(w http.ResponseWriter, r *http.Request, start time.Time, data interface{}, cached bool) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			RequestID:  logging.RequestIDFromContext(r.Context()),
			Timestamp:  time.Now(),
			DurationMs: time.Since(start).Milliseconds(),
			Cached:     cached,
		},
	})
}

// respondError sends an error envelope. A non-nil err is logged with
// sanitized fields, never echoed to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	requestID := logging.RequestIDFromContext(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &APIResponse{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
		Meta: &APIMeta{
			RequestID: requestID,
			Timestamp: time.Now(),
		},
	})
}

// respondValidationError answers 400 with the per-field details preserved.
func respondValidationError(w http.ResponseWriter, r *http.Request, apiErr *APIError) {
	requestID := logging.RequestIDFromContext(r.Context())
	apiErr.RequestID = requestID

	respondJSON(w, http.StatusBadRequest, &APIResponse{
		Success: false,
		Error:   apiErr,
		Meta: &APIMeta{
			RequestID: requestID,
			Timestamp: time.Now(),
		},
	})
}

// respondEngineError maps an analysis failure onto the envelope by kind.
// Parameter problems are the caller's fault and echo their message; storage
// failures answer with a generic message and log the cause.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case models.IsInvalidParameter(err):
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, err.Error(), nil)
	case models.IsNotFound(err):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error(), nil)
	case models.IsDataAccess(err):
		respondError(w, r, http.StatusInternalServerError, ErrCodeDatabaseError, "A database error occurred", err)
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred", err)
	}
}
