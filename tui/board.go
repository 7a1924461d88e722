// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/danielhkuo/tickoff/models"
)

// Filter selects which todos the list shows
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Next cycles all → active → completed → all
func (f Filter) Next() Filter {
	return (f + 1) % 3
}

func (f Filter) matches(t models.TodoResponse) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Board is the client-side copy of the user's todos. It is only changed
// by records the server returned, never re-fetched after a mutation.
type Board struct {
	Todos   []models.TodoResponse
	Filter  Filter
	Loading bool
	Err     string
}

// Visible returns the todos that pass the current filter, in list order
func (b *Board) Visible() []models.TodoResponse {
	out := make([]models.TodoResponse, 0, len(b.Todos))
	for _, t := range b.Todos {
		if b.Filter.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (b *Board) ActiveCount() int {
	n := 0
	for _, t := range b.Todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (b *Board) CompletedCount() int {
	return len(b.Todos) - b.ActiveCount()
}

// Replace swaps in a freshly loaded list
func (b *Board) Replace(todos []models.TodoResponse) {
	b.Todos = append([]models.TodoResponse(nil), todos...)
}

// Upsert merges a server record: replaced in place if the id is known,
// otherwise prepended as the newest.
func (b *Board) Upsert(t models.TodoResponse) {
	for i := range b.Todos {
		if b.Todos[i].ID == t.ID {
			todos := slices.Clone(b.Todos)
			todos[i] = t
			b.Todos = todos
			return
		}
	}
	b.Todos = append([]models.TodoResponse{t}, b.Todos...)
}

// Remove drops the given ids. Unknown ids are ignored.
func (b *Board) Remove(ids ...int64) {
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := make([]models.TodoResponse, 0, len(b.Todos))
	for _, t := range b.Todos {
		if !drop[t.ID] {
			kept = append(kept, t)
		}
	}
	b.Todos = kept
}

// Deleter removes one todo on the server
type Deleter interface {
	DeleteTodo(ctx context.Context, id int64) error
}

// ClearCompleted deletes every completed todo in todos, one request per
// todo, all in flight at once. The batch is not atomic: it returns the ids
// that were deleted (in input order) and the failures joined into one
// error.
func ClearCompleted(ctx context.Context, d Deleter, todos []models.TodoResponse) ([]int64, error) {
	var targets []int64
	for _, t := range todos {
		if t.Completed {
			targets = append(targets, t.ID)
		}
	}

	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, id := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.DeleteTodo(ctx, id); err != nil {
				errs[i] = fmt.Errorf("todo %d: %w", id, err)
			}
		}()
	}
	wg.Wait()

	deleted := make([]int64, 0, len(targets))
	for i, id := range targets {
		if errs[i] == nil {
			deleted = append(deleted, id)
		}
	}
	return deleted, errors.Join(errs...)
}
