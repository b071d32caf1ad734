// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the durable key-value layer every repository
writes through.

# Backends

Open selects the driver from the configured database type:

	st, err := store.Open("sqlite", "file:campusboard.db")
	st, err := store.Open("postgres", "postgres://...")

Both backends share one table:

	kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)

# Operations

Get and Set are individually atomic. There is no cross-key transaction: a
logical update spanning two keys can partially apply if the process dies
between the calls.

Update serializes read-modify-write per key:

	err := st.Update(ctx, "notifications", func(old string, ok bool) (string, error) {
		// decode old, append, re-encode
	})

Every list append and counter increment in the engine goes through Update,
which closes the lost-update window two overlapping appends would otherwise
have.

# Failure Mode

All I/O errors wrap ErrStorage. Callers surface a generic failed-to-save
message and leave in-memory state unchanged.
*/
package store
