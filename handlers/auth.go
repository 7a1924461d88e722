// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tickoff/auth"
	"github.com/danielhkuo/tickoff/cliparse"
	"github.com/danielhkuo/tickoff/middleware"
	"github.com/danielhkuo/tickoff/models"
	"github.com/danielhkuo/tickoff/store"
)

type AuthHandler struct {
	store  *store.Store
	tokens *auth.TokenIssuer
	cfg    cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{store: store.New(db), tokens: tokens, cfg: cfg}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	// Check if username exists
	taken, err := h.store.UsernameExists(ctx, req.Username)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username already exists")
		return
	}

	// Check if email exists
	taken, err = h.store.EmailExists(ctx, req.Email)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    store.Now(),
	}

	// A concurrent registration can still win the unique index
	err = h.store.CreateUser(ctx, user)
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username already exists")
		return
	case errors.Is(err, store.ErrEmailTaken):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email already exists")
		return
	case err != nil:
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	h.respondWithToken(w, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.checkCredentials(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		// Same answer for unknown user and wrong password
		slog.Info("login failed", "username", req.Username)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)

	h.respondWithToken(w, user)
}

// checkCredentials returns the user for a matching username and password,
// or auth.ErrInvalidCredentials for either kind of mismatch
func (h *AuthHandler) checkCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := h.store.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, auth.ErrInvalidCredentials
	}
	return user, nil
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *models.User) {
	token, expiresAt, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
	})
}
