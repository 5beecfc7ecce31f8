// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package database

import (
	"context"
	"fmt"

	"github.com/shelfwatch/shelfwatch/internal/models"
)

// Dimension columns coverage can be counted over. account_name answers "how
// many customers", channel and emirate answer distribution questions.
const (
	DimensionAccount = "account_name"
	DimensionChannel = "channel"
	DimensionEmirate = "emirate"
)

// validDimensions whitelists the identifiers eligible for interpolation into
// SQL. Dimension names are the only non-parameter input any query accepts,
// so membership here is checked before every use.
var validDimensions = map[string]bool{
	DimensionAccount: true,
	DimensionChannel: true,
	DimensionEmirate: true,
}

// IsValidDimension reports whether s names a countable dimension column.
func IsValidDimension(s string) bool {
	return validDimensions[s]
}

// dimensionColumn validates a dimension name, defaulting empty to
// account_name. Unknown names are a caller error, not a data error.
func dimensionColumn(dimension string) (string, error) {
	if dimension == "" {
		return DimensionAccount, nil
	}
	if !validDimensions[dimension] {
		return "", models.NewInvalidParameterError("dimension",
			fmt.Sprintf("must be one of %s, %s, %s", DimensionAccount, DimensionChannel, DimensionEmirate))
	}
	return dimension, nil
}

// WindowAggregate is the base aggregate every coverage answer derives from:
// distinct dimension values, summed amount and distinct invoices inside one
// half-open window.
type WindowAggregate struct {
	Window           Window
	Dimension        string
	CoverageCount    int64
	TotalAmount      float64
	TransactionCount int64
}

// GetWindowAggregate computes coverage, amount and transaction totals for
// the filter inside w, counted over the given dimension ("" = account_name).
// A failed query returns a DataAccessError, never a zero aggregate.
func (db *DB) GetWindowAggregate(ctx context.Context, f *Filter, w Window, dimension string) (*WindowAggregate, error) {
	column, err := dimensionColumn(dimension)
	if err != nil {
		return nil, err
	}

	where, args := f.whereClause(w)
	query := fmt.Sprintf(`
		SELECT
			COUNT(DISTINCT %s) AS coverage_count,
			COALESCE(SUM(amount), 0) AS total_amount,
			COUNT(DISTINCT invoice_no) AS transaction_count
		FROM sales
		WHERE %s
	`, column, where)

	agg := &WindowAggregate{Window: w, Dimension: column}
	err = db.queryRow(ctx, "window_aggregate", query, args,
		&agg.CoverageCount, &agg.TotalAmount, &agg.TransactionCount)
	if err != nil {
		return nil, err
	}
	return agg, nil
}
