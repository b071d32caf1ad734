// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the engine.

# Request Types

Types for parsing incoming JSON:

  - AddCommentRequest: text
  - FeedbackRequest: feedback
  - RegisterRequest: email, quantity
  - SubmitEventRequest: name, time, venue, category, description, date

# Response Types

Types for JSON responses:

  - ReactionResponse: likes, dislikes
  - EngagementResponse: likes, dislikes, comments
  - RegisterResponse: registration, message
  - ReminderResponse: scheduled, event_starts, message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Event: remote catalog record plus local likes/registered annotations
  - Comment: one entry in an event's comment feed
  - FeedbackEntry: one entry in an event's feedback list
  - Registration: one entry in the global registration list
  - Profile: the singleton user profile

The JSON tags on Comment, FeedbackEntry, and Registration match the shapes
previous app versions persisted, so stored lists decode without migration.

# Constants

	CategoryAll   = "All"       (sentinel: no category filter)
	AnonymousUser = "Anonymous" (display name when profile name unset)
*/
package models
