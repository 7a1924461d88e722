// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a Go client for the tickoff API.

	c := client.New("http://localhost:3318/api", client.NewFileStore(path))
	if _, err := c.Login(ctx, "alice", "secret"); err != nil { ... }
	todos, err := c.ListTodos(ctx)

The session (token, expiry and user) is kept in a SessionStore. FileStore
writes it as JSON with mode 0600; MemoryStore is for tests.

# Errors

Non-2xx responses come back as *APIError carrying the status code and the
server's message. Use IsNotFound, IsConflict and IsForbidden to branch.

A 401 on an authenticated call clears the stored session and returns
ErrSessionExpired. A 401 from Login is an ordinary *APIError.
*/
package client
