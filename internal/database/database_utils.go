// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/logging"
	"github.com/shelfwatch/shelfwatch/internal/metrics"
	"github.com/shelfwatch/shelfwatch/internal/models"
)

// defaultQueryTimeout bounds queries when the config carries no timeout,
// e.g. zero-value DatabaseConfig in tests.
const defaultQueryTimeout = 30 * time.Second

// ensureContext attaches the configured per-query deadline when the caller's
// context has none. Queries must never be able to hang the engine.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}

	if ctx == nil {
		return context.WithTimeout(context.Background(), timeout)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	return ctx, func() {}
}

// Checkpoint forces a WAL checkpoint, flushing pending writes into the main
// database file. Used before close and after schema initialization.
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, "CHECKPOINT")
	if err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// queryRows runs a filtered analytics query, scanning every row through
// scan. It applies the per-query deadline, records query metrics and wraps
// any failure as models.DataAccessError naming the operation, so a broken
// query can never surface as a silently-zero aggregate.
func (db *DB) queryRows(ctx context.Context, op, query string, args []interface{}, scan func(*sql.Rows) error) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.scanAll(ctx, query, args, scan)
	metrics.RecordDBQuery(op, "sales", time.Since(start), err)
	if err != nil {
		return models.NewDataAccessError(op, err)
	}
	return nil
}

func (db *DB) scanAll(ctx context.Context, query string, args []interface{}, scan func(*sql.Rows) error) error {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}
	return nil
}

// queryRow runs a single-row aggregate query into dest. sql.ErrNoRows is not
// special-cased: aggregate queries without GROUP BY always produce one row.
func (db *DB) queryRow(ctx context.Context, op, query string, args []interface{}, dest ...interface{}) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.conn.QueryRowContext(ctx, query, args...).Scan(dest...)
	metrics.RecordDBQuery(op, "sales", time.Since(start), err)
	if err != nil {
		return models.NewDataAccessError(op, fmt.Errorf("scan row: %w", err))
	}
	return nil
}

// closeWithLog closes a resource and logs any error. Use for cleanup where
// errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error. Use in
// error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // cleanup is best-effort
	}
}
