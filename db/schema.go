// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, dialect string) error {
	ddl, err := schemaFor(dialect)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func schemaFor(dialect string) (string, error) {
	var r *strings.Replacer
	switch dialect {
	case DialectPostgres:
		r = strings.NewReplacer(
			"{{serial}}", "SERIAL PRIMARY KEY",
			"{{timestamp}}", "TIMESTAMPTZ",
		)
	case DialectSQLite:
		r = strings.NewReplacer(
			"{{serial}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"{{timestamp}}", "TIMESTAMP",
		)
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
	return r.Replace(schema), nil
}

const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS users (
    id {{serial}},
    username VARCHAR(50) NOT NULL UNIQUE,
    email VARCHAR(100) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at {{timestamp}} NOT NULL
);

-- Todos (user_id is NULL in open mode)
CREATE TABLE IF NOT EXISTS todos (
    id {{serial}},
    title VARCHAR(200) NOT NULL,
    description VARCHAR(1000),
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    priority INTEGER NOT NULL DEFAULT 0 CHECK (priority >= 0 AND priority <= 3),
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}},
    user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
    version INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_todos_user_created ON todos(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_todos_created ON todos(created_at);
`
