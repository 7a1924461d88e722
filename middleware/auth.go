// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tickoff/auth"
)

// IdentityHandlerFunc is a handler that needs to know who is calling
type IdentityHandlerFunc func(w http.ResponseWriter, r *http.Request, id auth.Identity)

// TokenVerifier resolves a bearer token to an identity
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// RequireAuth verifies the bearer token and passes the caller's identity to
// next. Missing or invalid tokens get 401 before next runs.
func RequireAuth(verifier TokenVerifier, next IdentityHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer`)
			ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		id, err := verifier.Verify(token)
		if err != nil {
			slog.Debug("token rejected", "error", err, "path", r.URL.Path)
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next(w, r, id)
	}
}

// Anonymous adapts an IdentityHandlerFunc for routes that run without
// accounts. The handler receives the zero Identity.
func Anonymous(next IdentityHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r, auth.Identity{})
	}
}
