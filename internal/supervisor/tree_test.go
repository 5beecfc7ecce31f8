// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

var errProbeCrash = errors.New("probe crash")

// probeService is a minimal supervised service for tree tests. Each entry
// into Serve pushes a token on running; the first failures runs return
// errProbeCrash, after which Serve blocks until ctx is cancelled.
type probeService struct {
	id       string
	failures atomic.Int32
	runs     atomic.Int32
	running  chan struct{}
}

func newProbeService(id string, failures int32) *probeService {
	p := &probeService{id: id, running: make(chan struct{}, 16)}
	p.failures.Store(failures)
	return p
}

func (p *probeService) Serve(ctx context.Context) error {
	p.runs.Add(1)
	select {
	case p.running <- struct{}{}:
	default:
	}
	if p.failures.Add(-1) >= 0 {
		return errProbeCrash
	}
	<-ctx.Done()
	return ctx.Err()
}

func (p *probeService) String() string { return p.id }

func (p *probeService) awaitRun(t *testing.T) {
	t.Helper()
	select {
	case <-p.running:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s never started", p.id)
	}
}

func newTestTree(t *testing.T, config TreeConfig) *SupervisorTree {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tree, err := NewSupervisorTree(logger, config)
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}
	return tree
}

func TestNewSupervisorTreeRequiresLogger(t *testing.T) {
	if _, err := NewSupervisorTree(nil, DefaultTreeConfig()); err == nil {
		t.Fatal("expected error for nil logger")
	}
}

func TestNewSupervisorTreeDefaults(t *testing.T) {
	tree := newTestTree(t, TreeConfig{})
	if want := DefaultTreeConfig(); tree.config != want {
		t.Errorf("config = %+v, want %+v", tree.config, want)
	}
	if tree.Root() == nil {
		t.Error("Root() returned nil")
	}
}

func TestDefaultTreeConfig(t *testing.T) {
	want := TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
	if got := DefaultTreeConfig(); got != want {
		t.Errorf("DefaultTreeConfig() = %+v, want %+v", got, want)
	}
}

func TestSupervisorTreeStartsBothLayers(t *testing.T) {
	tree := newTestTree(t, TreeConfig{ShutdownTimeout: time.Second})

	janitor := newProbeService("janitor-probe", 0)
	api := newProbeService("api-probe", 0)
	tree.AddMaintenanceService(janitor)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := tree.ServeBackground(ctx)

	janitor.awaitRun(t)
	api.awaitRun(t)

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("tree stopped with %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport: %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTreeRestartsFailingService(t *testing.T) {
	tree := newTestTree(t, TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	flaky := newProbeService("flaky-probe", 2)
	steady := newProbeService("steady-probe", 0)
	tree.AddMaintenanceService(flaky)
	tree.AddAPIService(steady)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := tree.ServeBackground(ctx)

	steady.awaitRun(t)
	// Two crashes, then the third run settles.
	flaky.awaitRun(t)
	flaky.awaitRun(t)
	flaky.awaitRun(t)

	if got := flaky.runs.Load(); got < 3 {
		t.Errorf("flaky service ran %d times, want at least 3", got)
	}
	if got := steady.runs.Load(); got != 1 {
		t.Errorf("steady service ran %d times, want 1", got)
	}

	cancel()
	<-done
}

func TestSupervisorTreeRemovesLayerServices(t *testing.T) {
	tree := newTestTree(t, TreeConfig{ShutdownTimeout: time.Second})

	janitor := newProbeService("janitor-probe", 0)
	api := newProbeService("api-probe", 0)
	janitorToken := tree.AddMaintenanceService(janitor)
	apiToken := tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := tree.ServeBackground(ctx)

	janitor.awaitRun(t)
	api.awaitRun(t)

	if err := tree.RemoveMaintenanceService(janitorToken); err != nil {
		t.Errorf("RemoveMaintenanceService: %v", err)
	}
	if err := tree.RemoveAPIService(apiToken); err != nil {
		t.Errorf("RemoveAPIService: %v", err)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}
}
