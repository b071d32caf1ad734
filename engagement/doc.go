// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package engagement is the per-event ledger of likes, dislikes, comments,
// and feedback, keyed by event identifier on the durable store.
package engagement
