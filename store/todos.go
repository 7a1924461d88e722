// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/tickoff/models"
)

const todoColumns = `id, title, description, completed, priority, created_at, updated_at, user_id, version`

// TodoFilter narrows ListTodos. Zero fields don't filter.
type TodoFilter struct {
	OwnerID       int64
	CreatedAfter  time.Time // inclusive
	CreatedBefore time.Time // exclusive
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*models.Todo, error) {
	var t models.Todo
	var userID sql.NullInt64
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority,
		&t.CreatedAt, &t.UpdatedAt, &userID, &t.Version)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		id := userID.Int64
		t.UserID = &id
	}
	t.CreatedAt = t.CreatedAt.UTC()
	if t.UpdatedAt != nil {
		u := t.UpdatedAt.UTC()
		t.UpdatedAt = &u
	}
	return &t, nil
}

// ListTodos returns matching todos newest first
func (s *Store) ListTodos(ctx context.Context, f TodoFilter) ([]models.Todo, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.OwnerID != 0 {
		where = append(where, "user_id = "+arg(f.OwnerID))
	}
	if !f.CreatedAfter.IsZero() {
		where = append(where, "created_at >= "+arg(f.CreatedAfter.UTC()))
	}
	if !f.CreatedBefore.IsZero() {
		where = append(where, "created_at < "+arg(f.CreatedBefore.UTC()))
	}

	query := `SELECT ` + todoColumns + ` FROM todos`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read todos: %w", err)
	}
	return todos, nil
}

// GetTodo loads a todo by id regardless of owner. Ownership is the
// caller's decision.
func (s *Store) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	t, err := scanTodo(s.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query todo: %w", err)
	}
	return t, nil
}

// CreateTodo inserts t and sets its ID and version
func (s *Store) CreateTodo(ctx context.Context, t *models.Todo) error {
	var userID sql.NullInt64
	if t.UserID != nil {
		userID = sql.NullInt64{Int64: *t.UserID, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO todos (title, description, completed, priority, created_at, updated_at, user_id, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1)
		RETURNING id, version
	`, t.Title, t.Description, t.Completed, t.Priority, t.CreatedAt, t.UpdatedAt, userID).Scan(&t.ID, &t.Version)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// UpdateTodo saves the mutable fields of t if the stored version still
// equals t.Version, then bumps t.Version. If nothing matched it returns
// ErrNotFound when the row is gone and ErrConflict when someone else
// saved first.
func (s *Store) UpdateTodo(ctx context.Context, t *models.Todo) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE todos
		SET title = $1, description = $2, completed = $3, priority = $4,
		    updated_at = $5, version = version + 1
		WHERE id = $6 AND version = $7
	`, t.Title, t.Description, t.Completed, t.Priority, t.UpdatedAt, t.ID, t.Version)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if n == 0 {
		exists, err := s.exists(ctx, `SELECT 1 FROM todos WHERE id = $1`, t.ID)
		if err != nil {
			return fmt.Errorf("failed to check todo: %w", err)
		}
		if !exists {
			return ErrNotFound
		}
		return ErrConflict
	}

	t.Version++
	return nil
}

// DeleteTodo removes a todo. Deleting a missing id is ErrNotFound.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return requireOneRow(res)
}
