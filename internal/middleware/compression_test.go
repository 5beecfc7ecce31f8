// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const compressibleBody = `{"success":true,"data":{"windows":[{"window_label":"12M","account_count":42},{"window_label":"24M","account_count":57}]}}`

func TestCompressionGzipsWhenAccepted(t *testing.T) {
	t.Parallel()

	handler := Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(compressibleBody))
	}))

	req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Expected gzip encoding, got %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Accept-Encoding" {
		t.Errorf("Expected Vary: Accept-Encoding, got %q", got)
	}

	gz, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("Body is not valid gzip: %v", err)
	}
	defer gz.Close()
	decoded, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("Failed to decompress body: %v", err)
	}
	if string(decoded) != compressibleBody {
		t.Errorf("Decompressed body mismatch: got %s", decoded)
	}
}

func TestCompressionSkipsWithoutAcceptHeader(t *testing.T) {
	t.Parallel()

	handler := Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(compressibleBody))
	}))

	req := httptest.NewRequest("GET", "/api/v1/coverage", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "" {
		t.Errorf("Expected identity encoding, got %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Accept-Encoding" {
		t.Errorf("Expected Vary even on identity responses, got %q", got)
	}
	if rec.Body.String() != compressibleBody {
		t.Error("Expected uncompressed body unchanged")
	}
}

func TestCompressionPreservesStatus(t *testing.T) {
	t.Parallel()

	handler := Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false}`))
	}))

	req := httptest.NewRequest("GET", "/api/v1/items/NOPE/health", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 through compression, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Expected gzip on error responses too, got %q", got)
	}
}

func TestCompressionConcurrentRequests(t *testing.T) {
	t.Parallel()

	// The writer pool must hand each request its own gzip stream.
	handler := Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat(r.URL.Path, 50)))
	}))

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		path := "/api/v1/path" + string(rune('a'+i))
		go func() {
			req := httptest.NewRequest("GET", path, nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			gz, err := gzip.NewReader(rec.Body)
			if err != nil {
				done <- err
				return
			}
			defer gz.Close()
			decoded, err := io.ReadAll(gz)
			if err != nil {
				done <- err
				return
			}
			if string(decoded) != strings.Repeat(path, 50) {
				done <- io.ErrUnexpectedEOF
				return
			}
			done <- nil
		}()
	}

	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("Concurrent request %d failed: %v", i, err)
		}
	}
}
