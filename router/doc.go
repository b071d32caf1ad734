// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the local HTTP routes the app shell calls.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{...})

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Catalog:

	GET  /catalog             - Joined, sorted view (?category=, ?q=)
	GET  /catalog/recommended - Top 5 by likes/registrations
	POST /events              - Submit event to the remote catalog

Per-event engagement:

	GET  /events/{id}/engagement - Counters and comment feed
	POST /events/{id}/like       - One like vote
	POST /events/{id}/dislike    - One dislike vote
	POST /events/{id}/comments   - Append comment
	POST /events/{id}/feedback   - Append feedback

Registration and reminders:

	POST /events/{id}/register - Register attendance
	GET  /registrations        - Global registration list
	GET  /notifications        - Notification log, newest first
	POST /events/{id}/reminder - Schedule daily reminders

Profile:

	GET /profile
	PUT /profile

# Handler Initialization

The router creates handler instances with dependency injection; every
route is wrapped with request logging and metrics middleware.
*/
package router
