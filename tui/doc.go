// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tui is the bubbletea terminal client: a login/register form and
// a filterable todo list with inline editing. It talks to the server only
// through the API interface, which *client.Client satisfies.
package tui
