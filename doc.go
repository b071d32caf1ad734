// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Campusboard local engine.

Campusboard is the on-device state engine behind a campus events app:
it persists registrations, reactions, comments, feedback, notifications,
and the user profile in a local durable store, propagates writes between
screens over an in-process bus, derives the browsable catalog from the
remote event feed joined with local counters, and schedules daily event
reminders.

# Starting the Engine

The engine requires the remote catalog URL:

	CATALOG_URL=https://example.mockapi.io/api go run .

Or with flags:

	go run . -p 3319 -c "https://example.mockapi.io/api"

# Configuration

Required settings:

  - CATALOG_URL (-c): remote event catalog base URL

Optional settings:

  - PORT (-p): local API port (default: 3319)
  - DATABASE_URL (-d): store location (default: file:campusboard.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - REFRESH_CRON (-refresh): catalog refresh schedule (default: every 15 minutes)
  - NOTIFY_PERMISSION (-notify): OS notification permission state

# Architecture

Dependency-injected components wired once in main:

  - store: durable key-value layer (sqlite or postgres)
  - bus: synchronous in-process pub/sub between screens
  - engagement: per-event likes, dislikes, comments, feedback
  - journal: global registration list and notification log
  - reminder: daily reminder scheduling against the OS capability
  - catalog: remote feed client and joined/filtered/recommended views
  - handlers, router, middleware: the local HTTP surface the UI calls
*/
package main
