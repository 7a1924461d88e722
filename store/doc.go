// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store holds the SQL for users and todos. Todo updates are a
// compare-and-swap on the version column: ErrConflict means someone else
// wrote first, ErrNotFound that the row is gone.
package store
