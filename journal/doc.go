// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package journal keeps the two global append-only lists every mutating
// action feeds: the registration list and the human-readable notification
// log. Writes publish the full updated list on the bus so mounted screens
// refresh immediately.
package journal
