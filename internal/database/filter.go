// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package database

import (
	"fmt"
	"strings"

	"github.com/shelfwatch/shelfwatch/internal/scope"
)

// Filter narrows a query to an analysis scope plus optional column filters.
//
// All fields combine using AND logic. Multi-select fields (slices) use OR
// logic within the field: Channels ["Pharmacy", "Hospital"] matches rows in
// either channel. The field set doubles as the filterable-column whitelist;
// there is no way to smuggle an arbitrary column name through a Filter, and
// every value reaches SQL as a bound parameter.
//
// Scope mapping:
//   - company: no restriction
//   - brand: exact match on the brand column
//   - brandmask: LIKE match on the brand_mask manufacturer grouping
//   - item: exact match on item_code
type Filter struct {
	Scope    scope.Scope
	Accounts []string
	Channels []string
	Emirates []string
	Salesmen []string
	Items    []string
}

// NewFilter returns a filter for the given scope with no column filters.
func NewFilter(s scope.Scope) *Filter {
	return &Filter{Scope: s}
}

// appendInClause adds a parameterized IN condition for values, skipping
// empty slices. Shared by every multi-select dimension.
func appendInClause(column string, values []string, clauses *[]string, args *[]interface{}) {
	if len(values) == 0 {
		return
	}

	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		*args = append(*args, v)
	}
	*clauses = append(*clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
}

// conditions returns WHERE fragments and args for the filter, without
// window bounds. A nil filter yields no conditions.
func (f *Filter) conditions() ([]string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if f == nil {
		return clauses, args
	}

	switch f.Scope.Level {
	case scope.LevelBrand:
		clauses = append(clauses, "brand = ?")
		args = append(args, f.Scope.Value)
	case scope.LevelBrandMask:
		clauses = append(clauses, "brand_mask LIKE ?")
		args = append(args, f.Scope.Value)
	case scope.LevelItem:
		clauses = append(clauses, "item_code = ?")
		args = append(args, f.Scope.Value)
	}

	appendInClause("account_name", f.Accounts, &clauses, &args)
	appendInClause("channel", f.Channels, &clauses, &args)
	appendInClause("emirate", f.Emirates, &clauses, &args)
	appendInClause("salesman", f.Salesmen, &clauses, &args)
	appendInClause("item_code", f.Items, &clauses, &args)

	return clauses, args
}

// whereClause builds a WHERE body with a "1=1" base for safe concatenation,
// bounding rows to the window when one is given. Window bounds bind last so
// callers can prepend SELECT-list parameters without reordering.
func (f *Filter) whereClause(w Window) (string, []interface{}) {
	clauses, args := f.conditions()

	if !w.IsZero() {
		clauses = append(clauses, "invoice_date >= ?", "invoice_date < ?")
		args = append(args, w.Start, w.End)
	}

	if len(clauses) == 0 {
		return "1=1", args
	}
	return "1=1 AND " + strings.Join(clauses, " AND "), args
}
