// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package bus decouples writers (forms) from readers (list screens) with a
// synchronous in-process publish/subscribe channel. One screen's write
// becomes visible in another's view without a shared in-memory store.
package bus
