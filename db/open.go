// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Open connects to the database named by dialect and url and verifies the
// connection. SQLite URLs get foreign keys enabled and a sortable time
// format; in-memory SQLite is pinned to one connection so every query sees
// the same database.
func Open(ctx context.Context, dialect, url string) (*sql.DB, error) {
	var dsn string
	switch dialect {
	case DialectPostgres:
		dsn = url
	case DialectSQLite:
		dsn = sqliteDSN(url)
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		if isMemory(url) {
			conn.SetMaxOpenConns(1)
			conn.SetConnMaxLifetime(0)
			conn.SetConnMaxIdleTime(0)
		} else {
			// SQLite allows a single writer
			conn.SetMaxOpenConns(4)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

func sqliteDSN(url string) string {
	pragmas := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_time_format=sqlite",
	}
	if !isMemory(url) {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + strings.Join(pragmas, "&")
}

func isMemory(url string) bool {
	return strings.Contains(url, ":memory:") || strings.Contains(url, "mode=memory")
}
