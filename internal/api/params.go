// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
	"github.com/shelfwatch/shelfwatch/internal/validation"
)

// validateRequest validates a request struct with go-playground/validator.
// Nil means it passed; the returned error carries per-field details in the
// envelope shape under the VALIDATION_ERROR code.
func validateRequest(v interface{}) *APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getFloatParam extracts a float query parameter with a default value
func getFloatParam(r *http.Request, key string, defaultValue float64) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatValue
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseCommaSeparatedInts parses a comma-separated string into a slice of
// integers, skipping blanks and unparseable parts.
func parseCommaSeparatedInts(value string) []int {
	if value == "" {
		return nil
	}

	var result []int
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if num, err := strconv.Atoi(trimmed); err == nil {
			result = append(result, num)
		}
	}
	return result
}

// scopeParam reads a scope query parameter in its wire form ("company",
// "brand:DUP", "brandmask:%Bayer%", "item:NPB-168-0"). Absent means
// company-wide. Parse failures surface as invalid-parameter errors so they
// answer 400, not 500.
func scopeParam(r *http.Request, key string) (scope.Scope, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return scope.Company(), nil
	}

	s, err := scope.Parse(value)
	if err != nil {
		return scope.Scope{}, models.NewInvalidParameterError(key, err.Error())
	}
	return s, nil
}

// requiredScopeParam is scopeParam for parameters that must be present,
// like the two sides of a comparison.
func requiredScopeParam(r *http.Request, key string) (scope.Scope, error) {
	if strings.TrimSpace(r.URL.Query().Get(key)) == "" {
		return scope.Scope{}, models.NewInvalidParameterError(key, "must not be empty")
	}
	return scopeParam(r, key)
}

// asOfParam reads the as_of anchor date. Absent means now, which the engine
// expresses as the zero time.
func asOfParam(r *http.Request) (time.Time, error) {
	value := strings.TrimSpace(r.URL.Query().Get("as_of"))
	if value == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, models.NewInvalidParameterError("as_of", "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// itemParam reads a required item code query parameter.
func itemParam(r *http.Request) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get("item"))
	if value == "" {
		return "", models.NewInvalidParameterError("item", "must not be empty")
	}
	return value, nil
}
