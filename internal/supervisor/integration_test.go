// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/cache"
	"github.com/shelfwatch/shelfwatch/internal/config"
)

// TestSupervisorTreeRunsCacheJanitor wires the tree the way main does: the
// report-cache janitor under the maintenance layer and a stand-in for the
// HTTP server under the api layer. The janitor must sweep expired entries
// while the tree runs, and the whole composition must stop cleanly.
func TestSupervisorTreeRunsCacheJanitor(t *testing.T) {
	tree := newTestTree(t, TreeConfig{ShutdownTimeout: time.Second})

	reports := cache.New("reports", config.CacheConfig{TTL: time.Minute, MaxEntries: 100})
	for i := 0; i < 5; i++ {
		reports.SetWithTTL(fmt.Sprintf("report-%d", i), i, 10*time.Millisecond)
	}
	if got := reports.Len(); got != 5 {
		t.Fatalf("seeded %d entries, want 5", got)
	}

	api := newProbeService("api-probe", 0)
	tree.AddMaintenanceService(cache.NewJanitor(reports, 20*time.Millisecond))
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := tree.ServeBackground(ctx)

	api.awaitRun(t)

	deadline := time.After(2 * time.Second)
	for reports.Len() > 0 {
		select {
		case <-deadline:
			t.Fatalf("janitor left %d entries unswept", reports.Len())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("tree stopped with %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}
}

func TestSupervisorTreeStopsWithNoServices(t *testing.T) {
	tree := newTestTree(t, TreeConfig{ShutdownTimeout: 500 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	select {
	case err := <-tree.ServeBackground(ctx):
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("tree stopped with %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}
}

func TestSupervisorTreeConcurrentAdds(t *testing.T) {
	tree := newTestTree(t, TreeConfig{ShutdownTimeout: 500 * time.Millisecond})

	probes := make([]*probeService, 8)
	for i := range probes {
		probes[i] = newProbeService(fmt.Sprintf("probe-%d", i), 0)
	}

	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func(i int, p *probeService) {
			defer wg.Done()
			if i%2 == 0 {
				tree.AddMaintenanceService(p)
			} else {
				tree.AddAPIService(p)
			}
		}(i, p)
	}
	wg.Wait()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := tree.ServeBackground(ctx)

	for _, p := range probes {
		p.awaitRun(t)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}
}
