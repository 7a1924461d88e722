// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the tickoff API.

# Handler Types

Each handler is a struct built from the database connection and config:

  - AuthHandler: account registration and login
  - TodoHandler: todo CRUD and toggling

The router builds them once:

	authHandler := handlers.NewAuthHandler(db, cfg, tokens)
	todoHandler := handlers.NewTodoHandler(db, cfg)

# Accounts

	POST /api/auth/register → Register (returns token and user)
	POST /api/auth/login    → Login

A failed login answers 401 with the same message whether the username
or the password was wrong.

# Todos

TodoHandler methods take the caller's auth.Identity, resolved by
middleware.RequireAuth (or middleware.Anonymous in open mode):

	GET    /api/todos              → List (newest first)
	POST   /api/todos              → Create (201 + Location)
	GET    /api/todos/{id}         → Get
	PUT    /api/todos/{id}         → Update (partial)
	PATCH  /api/todos/{id}/toggle  → Toggle
	DELETE /api/todos/{id}         → Delete (204)

Another user's todo answers 403, an unknown id 404. Writes compare the
stored version, so a lost race answers 409 instead of overwriting.

In open mode there are no owners: List returns only todos created today
(server local time) and priority is not accepted.
*/
package handlers
