// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tickoff/auth"
	"github.com/danielhkuo/tickoff/cliparse"
	"github.com/danielhkuo/tickoff/handlers"
	"github.com/danielhkuo/tickoff/middleware"
	"github.com/danielhkuo/tickoff/models"
	"github.com/danielhkuo/tickoff/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handlers.NewAuthHandler(db, cfg, tokens)
	todoHandler := handlers.NewTodoHandler(db, cfg)
	st := store.New(db)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithMetrics(pattern, middleware.WithLogging(h)))
	}

	// Todo routes need a bearer token unless accounts are disabled
	protect := func(h middleware.IdentityHandlerFunc) http.HandlerFunc {
		if cfg.Mode == models.ModeOpen {
			return middleware.Anonymous(h)
		}
		return middleware.RequireAuth(tokens, h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	// Accounts
	if cfg.AccountsEnabled() {
		handle("POST /api/auth/register", authHandler.Register)
		handle("POST /api/auth/login", authHandler.Login)
	} else {
		slog.Warn("No JWT secret configured, account routes disabled")
	}

	// Todos
	handle("GET /api/todos", protect(todoHandler.List))
	handle("POST /api/todos", protect(todoHandler.Create))
	handle("GET /api/todos/{id}", protect(todoHandler.Get))
	handle("PUT /api/todos/{id}", protect(todoHandler.Update))
	handle("PATCH /api/todos/{id}/toggle", protect(todoHandler.Toggle))
	handle("DELETE /api/todos/{id}", protect(todoHandler.Delete))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tickoff API v1"))
	})

	return middleware.CORS(cfg.CORSOrigins)(mux)
}
