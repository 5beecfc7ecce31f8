// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

/*
Package supervisor provides process supervision for Shelfwatch using suture v4.

This package implements a hierarchical supervisor tree that manages the lifecycle
of all long-running services in the application. It provides Erlang/OTP-style
supervision with automatic restart, failure isolation, and graceful shutdown.

# Overview

The supervisor tree organizes services into two layers for failure isolation:

	RootSupervisor ("shelfwatch")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Report-cache Janitor
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that:
  - A crash in the cache janitor doesn't affect request serving
  - Each layer can restart independently with its own failure counting

The analysis engine itself is not supervised: it is stateless and runs
inside HTTP request handlers, so there is no engine process to restart.

# Key Features

Automatic Restart:
  - Crashed services are automatically restarted
  - Exponential backoff prevents restart storms
  - Configurable failure thresholds and decay rates

Failure Isolation:
  - Services are organized into logical groups
  - Child supervisor failures don't propagate upward
  - Each layer has independent failure counting

Graceful Shutdown:
  - Context cancellation triggers orderly shutdown
  - Configurable shutdown timeout per service
  - UnstoppedServiceReport for debugging hangs

Structured Logging:
  - Integration with slog for structured events
  - Logs service starts, stops, failures, and restarts
  - Event hooks via sutureslog adapter

# Usage Example

Basic setup in main.go:

	import (
	    "log/slog"
	    "github.com/shelfwatch/shelfwatch/internal/supervisor"
	    "github.com/shelfwatch/shelfwatch/internal/supervisor/services"
	)

	func main() {
	    logger := slog.Default()
	    config := supervisor.DefaultTreeConfig()

	    tree, err := supervisor.NewSupervisorTree(logger, config)
	    if err != nil {
	        log.Fatal(err)
	    }

	    // Add services to appropriate layers
	    tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	    tree.AddMaintenanceService(cache.NewJanitor(reports, time.Minute))

	    // Start the tree (blocks until context canceled)
	    ctx := context.Background()
	    if err := tree.Serve(ctx); err != nil {
	        log.Fatal(err)
	    }
	}

# Service Interface

Services must implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The Serve method should:
  - Block until the context is canceled or a fatal error occurs
  - Return ctx.Err() on graceful shutdown
  - Return other errors to trigger a restart
  - Return suture.ErrDoNotRestart to stop permanently

Optionally implement fmt.Stringer for readable log output.

# Configuration

TreeConfig controls restart behavior:

	config := supervisor.TreeConfig{
	    FailureThreshold: 5,                // Failures before backoff
	    FailureDecay:     30,               // Failure decay (seconds)
	    FailureBackoff:   15 * time.Second, // Backoff duration
	    ShutdownTimeout:  10 * time.Second, // Graceful shutdown limit
	}

DefaultTreeConfig() returns suture's documented defaults.
*/
package supervisor
