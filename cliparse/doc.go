// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cliparse handles command-line argument parsing and configuration.
//
// # Configuration
//
// ParseFlags returns a Config struct with all settings:
//
//	cfg, err := cliparse.ParseFlags(os.Args[1:])
//
// # Config Fields
//
//   - Port: Local API listen port (default: 3319)
//   - DatabaseURL: store location (default: file:campusboard.db)
//   - DatabaseType: "sqlite" or "postgres" (default: sqlite)
//   - CatalogURL: remote event catalog base URL (required)
//   - RefreshCron: catalog refresh schedule (default: */15 * * * *)
//   - NotifyGranted: OS notification permission state (default: true)
//
// # Environment Variables
//
// Flags fall back to environment variables:
//
//	PORT              → -p
//	DATABASE_URL      → -d
//	DATABASE_TYPE     → -t
//	CATALOG_URL       → -c
//	REFRESH_CRON      → -refresh
//	NOTIFY_PERMISSION → -notify
//
// CLI flags take precedence, except NOTIFY_PERMISSION which wins when set
// (it mirrors external OS state rather than operator preference).
//
// # Validation
//
// ParseFlags returns an error if CATALOG_URL is missing or the database
// type is unrecognized.
package cliparse
