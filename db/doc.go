// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

Two dialects are supported, SQLite (modernc.org/sqlite, no cgo) and
PostgreSQL (lib/pq). Queries elsewhere use $N placeholders, which both
accept.

	conn, err := db.Open(ctx, db.DialectSQLite, "todo.db")
	err = db.CreateSchema(ctx, conn, db.DialectSQLite)

CreateSchema is safe to call on every start.

# Tables

  - users: id, username (unique), email (unique), password_hash, created_at
  - todos: id, user_id (nullable, cascades), title, description,
    completed, priority (0-3), version, created_at, updated_at

Indexes cover todos(user_id, created_at) and todos(created_at).
*/
package db
