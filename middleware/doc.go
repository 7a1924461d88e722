// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /api/todos", middleware.WithLogging(handler))

Logs completion with method, path, status, remote and duration_ms, and
tags the response with X-Request-ID.

# Metrics

WithMetrics records a request counter and latency histogram labeled by
route pattern; MetricsHandler serves them.

# Authentication

	mux.HandleFunc("GET /api/todos", middleware.RequireAuth(tokens, todos.List))

RequireAuth reads "Authorization: Bearer <token>", verifies it and passes
the identity on. A missing or bad token answers 401 with a
WWW-Authenticate header. Anonymous passes an empty identity.

# CORS

	handler := middleware.CORS(cfg.CORSOrigins)(mux)

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreateTodoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ErrorResponse bodies are {"error": "...", "message": "..."}.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Honors X-Forwarded-For and X-Real-IP. Used in request logs.
*/
package middleware
