// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package models

import "errors"

// DataAccessError wraps a failure while reading the sales relation.
// Analyses never swallow store failures into zero-valued results; the
// wrapped error propagates to the caller so the API layer can map it
// to a 500 response.
type DataAccessError struct {
	// Op names the failed operation (e.g. "window_aggregate", "monthly_series")
	Op string

	// Err is the underlying driver or query error
	Err error
}

// Error implements the error interface.
func (e *DataAccessError) Error() string {
	if e.Err != nil {
		return "data access failed: " + e.Op + ": " + e.Err.Error()
	}
	return "data access failed: " + e.Op
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError wraps err as a data-access failure for op.
func NewDataAccessError(op string, err error) *DataAccessError {
	return &DataAccessError{Op: op, Err: err}
}

// InvalidParameterError reports a caller-supplied parameter that fails
// validation before any query runs (e.g. a non-increasing window list or
// a historical span not exceeding the recent span).
type InvalidParameterError struct {
	// Param is the offending parameter name
	Param string

	// Reason describes the constraint that was violated
	Reason string
}

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return "invalid parameter " + e.Param + ": " + e.Reason
}

// NewInvalidParameterError reports a validation failure for param.
func NewInvalidParameterError(param, reason string) *InvalidParameterError {
	return &InvalidParameterError{Param: param, Reason: reason}
}

// NotFoundError reports a lookup for an entity with no sales to report on.
// The API layer maps it to a 404 response.
type NotFoundError struct {
	// Entity names the missing kind, e.g. "item"
	Entity string

	// Key is the identifier that failed to resolve
	Key string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.Entity + " not found: " + e.Key
}

// NewNotFoundError reports a failed entity lookup.
func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// IsDataAccess reports whether err wraps a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

// IsInvalidParameter reports whether err wraps an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ipe *InvalidParameterError
	return errors.As(err, &ipe)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
