// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/tickoff/auth"
	"github.com/danielhkuo/tickoff/cliparse"
	"github.com/danielhkuo/tickoff/middleware"
	"github.com/danielhkuo/tickoff/models"
	"github.com/danielhkuo/tickoff/store"
)

// TodoHandler serves the todo routes. With owned set (auth mode) every
// operation is scoped to the caller; otherwise todos are shared, list
// shows only today's, and priority is not part of the API.
type TodoHandler struct {
	store *store.Store
	cfg   cliparse.Config
	owned bool
	now   func() time.Time
}

func NewTodoHandler(db *sql.DB, cfg cliparse.Config) *TodoHandler {
	return &TodoHandler{
		store: store.New(db),
		cfg:   cfg,
		owned: cfg.Mode != models.ModeOpen,
		now:   store.Now,
	}
}

// List handles GET /api/todos
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var filter store.TodoFilter
	if h.owned {
		filter.OwnerID = id.UserID
	} else {
		// Server-local calendar day
		local := h.now().Local()
		start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
		filter.CreatedAfter = start
		filter.CreatedBefore = start.AddDate(0, 0, 1)
	}

	todos, err := h.store.ListTodos(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list todos", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if h.owned {
		resp := make([]models.TodoResponse, 0, len(todos))
		for i := range todos {
			resp = append(resp, todos[i].Response())
		}
		middleware.JSONResponse(w, http.StatusOK, resp)
		return
	}

	resp := make([]models.OpenTodoResponse, 0, len(todos))
	for i := range todos {
		resp = append(resp, todos[i].OpenResponse())
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Get handles GET /api/todos/{id}
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	todo, ok := h.loadOwned(w, r, id)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, todo)
}

// Create handles POST /api/todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req models.CreateTodoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(h.owned); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	todo := &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   h.now(),
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if h.owned {
		owner := id.UserID
		todo.UserID = &owner
	}

	if err := h.store.CreateTodo(r.Context(), todo); err != nil {
		slog.Error("failed to insert todo", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	slog.Info("todo created", "todo_id", todo.ID, "user_id", id.UserID)

	w.Header().Set("Location", fmt.Sprintf("/api/todos/%d", todo.ID))
	h.respond(w, http.StatusCreated, todo)
}

// Update handles PUT /api/todos/{id}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	todo, ok := h.loadOwned(w, r, id)
	if !ok {
		return
	}

	var req models.UpdateTodoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(h.owned); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Apply(todo)
	if !h.save(w, r, todo) {
		return
	}

	slog.Info("todo updated", "todo_id", todo.ID, "user_id", id.UserID)

	h.respond(w, http.StatusOK, todo)
}

// Toggle handles PATCH /api/todos/{id}/toggle
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	todo, ok := h.loadOwned(w, r, id)
	if !ok {
		return
	}

	todo.Completed = !todo.Completed
	if !h.save(w, r, todo) {
		return
	}

	slog.Info("todo toggled", "todo_id", todo.ID, "completed", todo.Completed)

	h.respond(w, http.StatusOK, todo)
}

// Delete handles DELETE /api/todos/{id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	todo, ok := h.loadOwned(w, r, id)
	if !ok {
		return
	}

	err := h.store.DeleteTodo(r.Context(), todo.ID)
	if errors.Is(err, store.ErrNotFound) {
		notFound(w, todo.ID)
		return
	}
	if err != nil {
		slog.Error("failed to delete todo", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}

	slog.Info("todo deleted", "todo_id", todo.ID, "user_id", id.UserID)

	w.WriteHeader(http.StatusNoContent)
}

// loadOwned resolves {id} and enforces ownership. It writes the error
// response itself and reports whether the caller may continue.
func (h *TodoHandler) loadOwned(w http.ResponseWriter, r *http.Request, id auth.Identity) (*models.Todo, bool) {
	todoID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || todoID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return nil, false
	}

	todo, err := h.store.GetTodo(r.Context(), todoID)
	if errors.Is(err, store.ErrNotFound) {
		notFound(w, todoID)
		return nil, false
	}
	if err != nil {
		slog.Error("failed to query todo", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}

	if h.owned && !todo.OwnedBy(id.UserID) {
		slog.Warn("todo access denied", "todo_id", todoID, "user_id", id.UserID)
		middleware.ErrorResponse(w, http.StatusForbidden, "You do not have access to this todo")
		return nil, false
	}

	return todo, true
}

// save stamps updated_at and writes todo with a version check
func (h *TodoHandler) save(w http.ResponseWriter, r *http.Request, todo *models.Todo) bool {
	now := h.now()
	todo.UpdatedAt = &now

	err := h.store.UpdateTodo(r.Context(), todo)
	switch {
	case errors.Is(err, store.ErrNotFound):
		notFound(w, todo.ID)
		return false
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Todo was modified concurrently, reload and retry")
		return false
	case err != nil:
		slog.Error("failed to update todo", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update todo")
		return false
	}
	return true
}

func (h *TodoHandler) respond(w http.ResponseWriter, status int, todo *models.Todo) {
	if h.owned {
		middleware.JSONResponse(w, status, todo.Response())
		return
	}
	middleware.JSONResponse(w, status, todo.OpenResponse())
}

func notFound(w http.ResponseWriter, id int64) {
	middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Todo with id %d not found", id))
}
