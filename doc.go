// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the tickoff API server.

tickoff is a personal todo tracker: users register, log in, and manage
their own todos through a JSON API. A terminal client lives in
cmd/todo-tui.

# Starting the Server

The server reads CLI flags, environment variables and an optional .env file:

	JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --jwt-secret ...

# Configuration

Required settings:

  - JWT_SECRET (--jwt-secret): token signing secret, at least 16 bytes
    (not needed with --mode open)
  - DATABASE_URL (-d): required for PostgreSQL

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite, file todo.db)
  - TOKEN_TTL, BCRYPT_COST, CORS_ORIGINS, TODO_MODE, LOG_LEVEL, LOG_FORMAT

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, todos)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, bearer auth, JSON helpers
  - store: SQL queries and optimistic concurrency
  - models: Request/response types and validation
  - auth: Password hashing and access tokens
  - db: Connection and schema creation
  - cliparse: Configuration parsing
  - client, tui: Go API client and terminal UI

See package documentation for each component.
*/
package main
