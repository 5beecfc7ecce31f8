// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package api

// End-to-end tests over the assembled chi router and a live in-memory
// DuckDB store.
//
// These tests verify:
// - Success envelopes carry data, request IDs and cache validators
// - Parameter errors map to 400 with the documented error codes
// - Unknown items answer 404 through the engine's not-found error
// - Health, liveness and readiness endpoints report correctly
// - Dashboard responses are cached and flagged via meta.cached
// - Free-text questions resolve and dispatch through POST /ask
// - Unmatched routes and methods answer in the envelope, not plain text
// - The Prometheus and Swagger surfaces are mounted

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	_ "github.com/shelfwatch/shelfwatch/docs"
	"github.com/shelfwatch/shelfwatch/internal/analytics"
	"github.com/shelfwatch/shelfwatch/internal/cache"
	"github.com/shelfwatch/shelfwatch/internal/config"
	"github.com/shelfwatch/shelfwatch/internal/database"
	"github.com/shelfwatch/shelfwatch/internal/models"
	"github.com/shelfwatch/shelfwatch/internal/scope"
)

// testDBSemaphore serializes tests that hold a live DuckDB connection, the
// same discipline the database and analytics package tests use.
var testDBSemaphore = make(chan struct{}, 1)

// testDBMutex serializes database.New itself.
var testDBMutex sync.Mutex

// testAsOf anchors every dated scenario. Midnight so day-normalized window
// boundaries are exact.
var testAsOf = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func daysBefore(n int) time.Time {
	return testAsOf.AddDate(0, 0, -n)
}

func monthsBefore(n int) time.Time {
	return testAsOf.AddDate(0, -n, 0)
}

// setupTestServer assembles the full HTTP surface over a fresh in-memory
// database: store, engine, resolver, report cache, handler and router, with
// the default configuration.
func setupTestServer(t *testing.T) (http.Handler, *database.DB) {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	dbCfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}

	type result struct {
		db  *database.DB
		err error
	}

	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		db, err := database.New(dbCfg)
		testDBMutex.Unlock()
		resultCh <- result{db: db, err: err}
	}()

	var db *database.DB
	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		db = res.db
		t.Cleanup(func() {
			_ = db.Close()
		})
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s (DuckDB may be under resource pressure)")
		return nil, nil
	}

	cfg := config.Default()
	engine := analytics.NewEngine(db, cfg.Analysis)
	resolver := scope.NewResolver(db, nil)
	reports := cache.New("reports", cfg.Cache)
	t.Cleanup(reports.Clear)

	handler := NewHandler(db, engine, resolver, reports, cfg, "test")
	router := NewRouter(handler)
	t.Cleanup(router.Close)

	return router.SetupChi(), db
}

// sale is one test row. Zero-valued fields fall back to defaults in
// insertSales so scenarios only spell out what they assert on.
type sale struct {
	invoice  string
	date     time.Time
	item     string
	desc     string
	brand    string
	mask     string
	account  string
	channel  string
	emirate  string
	salesman string
	amount   float64
	qty      int64
	bonus    int64
}

// insertSales inserts test rows, filling defaults for unset fields.
func insertSales(t *testing.T, db *database.DB, sales []sale) {
	t.Helper()
	for i, s := range sales {
		if s.invoice == "" {
			s.invoice = fmt.Sprintf("T-%04d", i+1)
		}
		if s.desc == "" {
			s.desc = s.item + " Desc"
		}
		if s.channel == "" {
			s.channel = "Pharmacy"
		}
		if s.emirate == "" {
			s.emirate = "Dubai"
		}
		if s.salesman == "" {
			s.salesman = "Ahmed Hassan"
		}
		if s.qty == 0 {
			s.qty = 1
		}

		_, err := db.Conn().Exec(`
			INSERT INTO sales (
				invoice_no, invoice_date, item_code, item_desc, brand, brand_mask,
				account_name, channel, emirate, salesman, amount, regular_qty, bonus_qty
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, s.invoice, s.date, s.item, s.desc, s.brand, s.mask,
			s.account, s.channel, s.emirate, s.salesman, s.amount, s.qty, s.bonus)
		if err != nil {
			t.Fatalf("Failed to insert test sale: %v", err)
		}
	}
}

// serve runs one request through the router and returns the recorder.
func serve(h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeData re-decodes the envelope's data payload into a typed target.
func decodeData(t *testing.T, env *APIResponse, target interface{}) {
	t.Helper()
	raw, err := json.Marshal(env.Data)
	if err != nil {
		t.Fatalf("Failed to re-marshal envelope data: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("Failed to decode envelope data: %v", err)
	}
}

func TestCoverageEndpointLadder(t *testing.T) {
	silenceLogs(t)
	h, db := setupTestServer(t)

	insertSales(t, db, []sale{
		{date: daysBefore(20), item: "DUP-100-1", brand: "DUP", account: "Alpha Pharmacy", amount: 500},
		{date: monthsBefore(18), item: "DUP-100-1", brand: "DUP", account: "Beta Clinic", amount: 300},
	})

	rec := serve(h, http.MethodGet, "/api/v1/coverage?windows=12,24&as_of=2026-03-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec.Body.Bytes())
	if !env.Success {
		t.Fatalf("Expected success envelope, got %+v", env)
	}
	if env.Meta == nil || env.Meta.RequestID == "" {
		t.Error("Expected meta.request_id to be set")
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("Expected an ETag on a success response")
	}

	var report models.CoverageReport
	decodeData(t, env, &report)
	if report.Scope != "company" {
		t.Errorf("Expected company scope, got %q", report.Scope)
	}
	if report.Dimension != "account_name" {
		t.Errorf("Expected default dimension account_name, got %q", report.Dimension)
	}
	if len(report.Windows) != 2 {
		t.Fatalf("Expected 2 windows, got %d", len(report.Windows))
	}
	if report.Windows[0].WindowLabel != "12M" || report.Windows[0].CoverageCount != 1 {
		t.Errorf("12M window: expected 1 account, got %+v", report.Windows[0])
	}
	if report.Windows[1].WindowLabel != "24M" || report.Windows[1].CoverageCount != 2 {
		t.Errorf("24M window: expected 2 accounts, got %+v", report.Windows[1])
	}
}

func TestCoverageEndpointRejectsBadWindows(t *testing.T) {
	silenceLogs(t)
	h, _ := setupTestServer(t)

	rec := serve(h, http.MethodGet, "/api/v1/coverage?windows=24,12", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Success || env.Error == nil {
		t.Fatalf("Expected error envelope, got %+v", env)
	}
	if env.Error.Code != ErrCodeValidationFailed {
		t.Errorf("Expected %s, got %s", ErrCodeValidationFailed, env.Error.Code)
	}
}

func TestCoverageEndpointRejectsBadScope(t *testing.T) {
	silenceLogs(t)
	h, _ := setupTestServer(t)

	rec := serve(h, http.MethodGet, "/api/v1/coverage?scope=warehouse:A1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Error == nil || env.Error.Code != ErrCodeInvalidParameter {
		t.Errorf("Expected %s, got %+v", ErrCodeInvalidParameter, env.Error)
	}
}

func TestCoverageEndpointRejectsBadAsOf(t *testing.T) {
	silenceLogs(t)
	h, _ := setupTestServer(t)

	rec := serve(h, http.MethodGet, "/api/v1/coverage?as_of=01-03-2026", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Error == nil || env.Error.Code != ErrCodeInvalidParameter {
		t.Errorf("Expected %s, got %+v", ErrCodeInvalidParameter, env.Error)
	}
}

func TestItemHealthUnknownItem(t *testing.T) {
	silenceLogs(t)
	h, _ := setupTestServer(t)

	rec := serve(h, http.MethodGet, "/api/v1/items/GHOST-404-X/health", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d (body %s)", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Success {
		t.Error("Expected a failed envelope")
	}
	if env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("Expected %s, got %+v", ErrCodeNotFound, env.Error)
	}
}

func TestItemHealthReport(t *testing.T) {
	silenceLogs(t)
	h, db := setupTestServer(t)

	var rows []sale
	for m := 1; m <= 6; m++ {
		rows = append(rows, sale{
			date:    monthsBefore(m),
			item:    "DUP-100-1",
			brand:   "DUP",
			account: "Alpha Pharmacy",
			amount:  400,
		})
	}
	insertSales(t, db, rows)

	// Lower-case code exercises the case-insensitive lookup
	rec := serve(h, http.MethodGet, "/api/v1/items/dup-100-1/health?as_of=2026-03-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec.Body.Bytes())
	var report models.ItemHealthReport
	decodeData(t, env, &report)

	if report.ItemCode != "DUP-100-1" {
		t.Errorf("Expected canonical item code DUP-100-1, got %q", report.ItemCode)
	}
	if report.Brand != "DUP" {
		t.Errorf("Expected brand DUP, got %q", report.Brand)
	}
	if report.AccountCount != 1 {
		t.Errorf("Expected 1 account, got %d", report.AccountCount)
	}
	if len(report.Coverage) == 0 {
		t.Error("Expected coverage windows in the health report")
	}
	if report.Pattern == nil {
		t.Error("Expected a pattern classification in the health report")
	}
}

func TestHealthEndpoints(t *testing.T) {
	silenceLogs(t)
	h, db := setupTestServer(t)

	insertSales(t, db, []sale{
		{date: daysBefore(10), item: "DUP-100-1", brand: "DUP", account: "Alpha Pharmacy", amount: 100},
	})

	rec := serve(h, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Health: expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	var report healthReport
	decodeData(t, env, &report)
	if report.Status != "healthy" {
		t.Errorf("Expected healthy status, got %q", report.Status)
	}
	if report.Version != "test" {
		t.Errorf("Expected version test, got %q", report.Version)
	}
	if report.Database == nil || report.Database.Rows != 1 {
		t.Errorf("Expected database stats with 1 row, got %+v", report.Database)
	}

	rec = serve(h, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Liveness: expected 200, got %d", rec.Code)
	}

	rec = serve(h, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Readiness: expected 200, got %d", rec.Code)
	}
	env = decodeEnvelope(t, rec.Body.Bytes())
	ready := map[string]interface{}{}
	decodeData(t, env, &ready)
	if ready["database_connected"] != true {
		t.Errorf("Expected database_connected true, got %+v", ready)
	}
}

func TestBrandDashboardCaching(t *testing.T) {
	silenceLogs(t)
	h, db := setupTestServer(t)

	insertSales(t, db, []sale{
		{date: daysBefore(15), item: "DUP-100-1", brand: "DUP", account: "Alpha Pharmacy", amount: 250},
		{date: monthsBefore(3), item: "DUP-200-2", brand: "DUP", account: "Beta Clinic", amount: 800},
	})

	rec := serve(h, http.MethodGet, "/api/v1/dashboard/brand/DUP?as_of=2026-03-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Meta == nil || env.Meta.Cached {
		t.Fatalf("First request must not be served from cache: %+v", env.Meta)
	}

	rec = serve(h, http.MethodGet, "/api/v1/dashboard/brand/DUP?as_of=2026-03-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on repeat, got %d", rec.Code)
	}
	env = decodeEnvelope(t, rec.Body.Bytes())
	if env.Meta == nil || !env.Meta.Cached {
		t.Errorf("Repeat request should be served from cache: %+v", env.Meta)
	}
}

func TestAskEndpoint(t *testing.T) {
	silenceLogs(t)
	h, db := setupTestServer(t)

	insertSales(t, db, []sale{
		{date: daysBefore(5), item: "DUP-100-1", brand: "DUP", account: "Alpha Pharmacy", amount: 900},
	})

	rec := serve(h, http.MethodPost, "/api/v1/ask", `{"question": "coverage for duphalac"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec.Body.Bytes())
	var answer askAnswer
	decodeData(t, env, &answer)

	if answer.Resolved.Category != scope.CategoryCoverage {
		t.Errorf("Expected coverage category, got %q", answer.Resolved.Category)
	}
	if answer.Resolved.ScopeStr != "brand:DUP" {
		t.Errorf("Expected alias to resolve brand:DUP, got %q", answer.Resolved.ScopeStr)
	}
	if answer.Result == nil {
		t.Error("Expected a dispatched coverage result")
	}
}

func TestAskEndpointRejectsBadBody(t *testing.T) {
	silenceLogs(t)
	h, _ := setupTestServer(t)

	rec := serve(h, http.MethodPost, "/api/v1/ask", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for malformed JSON, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Error == nil || env.Error.Code != ErrCodeBadRequest {
		t.Errorf("Expected %s, got %+v", ErrCodeBadRequest, env.Error)
	}

	rec = serve(h, http.MethodPost, "/api/v1/ask", `{"question": "hi"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for a too-short question, got %d", rec.Code)
	}
	env = decodeEnvelope(t, rec.Body.Bytes())
	if env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
		t.Errorf("Expected %s, got %+v", ErrCodeValidationFailed, env.Error)
	}
}

func TestUnknownRouteAnswersInEnvelope(t *testing.T) {
	silenceLogs(t)
	h, _ := setupTestServer(t)

	rec := serve(h, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Success || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("Expected %s envelope, got %+v", ErrCodeNotFound, env.Error)
	}
}

func TestMethodNotAllowedAnswersInEnvelope(t *testing.T) {
	silenceLogs(t)
	h, _ := setupTestServer(t)

	rec := serve(h, http.MethodDelete, "/api/v1/coverage", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Expected 405, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Success || env.Error == nil || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("Expected %s envelope, got %+v", ErrCodeMethodNotAllowed, env.Error)
	}
}

func TestObservabilityRoutesMounted(t *testing.T) {
	silenceLogs(t)
	h, _ := setupTestServer(t)

	rec := serve(h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("Expected Go runtime metrics in the exposition")
	}

	rec = serve(h, http.MethodGet, "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Swagger spec: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Shelfwatch API") {
		t.Error("Expected the registered spec title in the Swagger document")
	}
}
