// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP handlers behind the local API.

Each handler struct receives its dependencies on construction:

  - CatalogHandler: catalog view, recommendations, event submission
  - EngagementHandler: reactions, comments, feedback
  - JournalHandler: registration, registration list, notification log
  - ReminderHandler: reminder scheduling
  - ProfileHandler: profile load/save

Handlers translate the engine's sentinel errors into HTTP statuses:
empty-field validation -> 400, storage failures -> 500, unreachable
remote catalog -> 502, refused notification permission -> 403, event
already passed -> 409.
*/
package handlers
