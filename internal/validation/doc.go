// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

// Package validation wraps go-playground/validator v10 behind a thread-safe
// singleton with the custom tags the API request structs use and with error
// translation into the API's VALIDATION_ERROR shape.
//
// Custom tags:
//   - increasing: []int values must be positive and strictly ascending,
//     used for coverage window ladders
//   - itemcode: string matches the catalog's item code shape
//
// Built-in tags cover the rest: datetime=2006-01-02 for as-of dates,
// gt/lt/gte/lte for day and month ranges, oneof for enumerations.
//
//	type coverageParams struct {
//	    Windows []int  `validate:"omitempty,increasing"`
//	    AsOf    string `validate:"omitempty,datetime=2006-01-02"`
//	}
//
//	if verr := validation.ValidateStruct(&params); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // respond 400 with apiErr.Code and apiErr.Message
//	}
package validation
