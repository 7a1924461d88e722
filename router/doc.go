// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires handlers into an http.ServeMux.

	handler := router.NewRouter(db, cfg)

Every API route is wrapped with request logging and Prometheus metrics,
and todo routes with bearer-token auth. The whole mux sits behind CORS.

	GET  /health   - 200 OK, or 503 when the database is down
	GET  /metrics  - Prometheus exposition
	GET  /         - banner

	POST /api/auth/register  (only with a JWT secret)
	POST /api/auth/login     (only with a JWT secret)

	GET    /api/todos
	POST   /api/todos
	GET    /api/todos/{id}
	PUT    /api/todos/{id}
	PATCH  /api/todos/{id}/toggle
	DELETE /api/todos/{id}
*/
package router
