// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

/*
Package services adapts application components to suture v4 supervision.

Components whose lifecycle does not already fit suture's model get a wrapper
here that translates it into a context-aware Serve:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The only wrapper today is HTTPServerService, which bridges *http.Server's
blocking ListenAndServe to Serve: cancellation triggers a bounded graceful
Shutdown, http.ErrServerClosed counts as a clean stop, and any other listen
error is returned so the supervisor restarts the server. The report-cache
janitor (internal/cache.Janitor) implements suture.Service directly and
needs no wrapper.

Return values follow suture's conventions:

	nil       -> stopped cleanly, not restarted
	ctx.Err() -> shutdown requested, normal termination
	error     -> crashed, supervisor restarts it

Wrappers implement fmt.Stringer so supervisor log lines carry a stable
service name ("http-server").
*/
package services
