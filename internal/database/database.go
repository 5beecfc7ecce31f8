// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/shelfwatch/shelfwatch/internal/config"
	"github.com/shelfwatch/shelfwatch/internal/logging"
	"github.com/shelfwatch/shelfwatch/internal/metrics"
)

// DB wraps the DuckDB connection and provides the query surface the
// analytics engine reads from. All methods are safe for concurrent use;
// the engine fans scans out across goroutines sharing one *DB.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// Prepared statement cache for the fixed-SQL catalog lookups, which
	// run once per incoming question.
	stmtCache   map[string]*sql.Stmt
	stmtCacheMu sync.RWMutex
}

// New opens (or creates) the DuckDB database, tunes the connection pool and
// initializes the sales schema. When cfg.SeedDemoData is set and the sales
// relation is empty, a deterministic demo dataset is loaded.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// preserve_insertion_order=false reduces memory usage. Every query in
	// this package carries an explicit ORDER BY, so result order never
	// depends on it.
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	// Disable extension auto-install/auto-load to prevent hangs in
	// restricted network environments. The sales schema needs core SQL only.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:      conn,
		cfg:       cfg,
		stmtCache: make(map[string]*sql.Stmt),
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

// configureConnectionPool tunes the sql.DB pool for an embedded OLAP store.
// DuckDB parallelizes within a single query, so the pool stays small:
// max_open NumCPU for concurrent sections, max_idle 2 for reuse, bounded
// lifetimes so stale handles are recycled.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates the schema, indexes and, when configured, the demo
// dataset, then checkpoints so a clean database file survives a crash
// directly after first start.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}

	if err := db.createIndexes(); err != nil {
		return err
	}

	if db.cfg.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := db.SeedDemoData(ctx); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		// Best effort; the issue only affects WAL replay on next start.
		logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
	}

	return nil
}

// Close closes all cached prepared statements and the connection. It
// checkpoints first to flush the WAL into the main database file.
func (db *DB) Close() error {
	db.stmtCacheMu.Lock()
	for _, stmt := range db.stmtCache {
		if stmt != nil {
			closeWithLog(stmt, "prepared statement")
		}
	}
	db.stmtCache = make(map[string]*sql.Stmt)
	db.stmtCacheMu.Unlock()

	if db.conn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.Checkpoint(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()

		return db.conn.Close()
	}
	return nil
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Conn returns the underlying SQL connection. Used by tests and by tooling
// that needs direct access; the engine itself goes through typed methods.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path, ":memory:" for ephemeral stores.
func (db *DB) Path() string {
	return db.cfg.Path
}

// getStatement returns a cached prepared statement for the given SQL,
// preparing and caching it on first use. Only fixed-SQL queries (catalog
// lookups) go through the cache; filtered analytics SQL is built per call.
func (db *DB) getStatement(ctx context.Context, query string) (*sql.Stmt, error) {
	db.stmtCacheMu.RLock()
	stmt, ok := db.stmtCache[query]
	db.stmtCacheMu.RUnlock()
	if ok {
		return stmt, nil
	}

	db.stmtCacheMu.Lock()
	defer db.stmtCacheMu.Unlock()
	if stmt, ok := db.stmtCache[query]; ok {
		return stmt, nil
	}

	stmt, err := db.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	db.stmtCache[query] = stmt
	return stmt, nil
}

// Stats summarizes the sales relation for health and readiness reporting.
type Stats struct {
	Rows      int64      `json:"rows"`
	Items     int64      `json:"items"`
	Accounts  int64      `json:"accounts"`
	Brands    int64      `json:"brands"`
	FirstSale *time.Time `json:"first_sale,omitempty"`
	LastSale  *time.Time `json:"last_sale,omitempty"`
}

// GetStats returns row, item, account and brand counts plus the date span of
// the relation. Span fields are nil while the relation is empty.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var stats Stats
	var first, last sql.NullTime
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT item_code),
			COUNT(DISTINCT account_name),
			COUNT(DISTINCT brand),
			MIN(invoice_date),
			MAX(invoice_date)
		FROM sales
	`).Scan(&stats.Rows, &stats.Items, &stats.Accounts, &stats.Brands, &first, &last)
	metrics.RecordDBQuery("stats", "sales", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales stats: %w", err)
	}

	if first.Valid {
		stats.FirstSale = &first.Time
	}
	if last.Valid {
		stats.LastSale = &last.Time
	}
	return &stats, nil
}
