// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/tickoff/models"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 4 << 20

// Client talks to the tickoff API on behalf of one user. It keeps the
// session in a SessionStore and attaches the bearer token to todo calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionStore
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:3318/api".
func New(baseURL string, sessions SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sessions:   sessions,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Accounts

// Register creates an account and stores the returned session
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	return c.authenticate(ctx, "/auth/register", req)
}

// Login stores a new session for the credentials. Bad credentials come
// back as an *APIError with status 401, not ErrSessionExpired.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	req := models.LoginRequest{Username: username, Password: password}
	return c.authenticate(ctx, "/auth/login", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*Session, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		return nil, err
	}

	s := &Session{
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
		User:      User{ID: resp.UserID, Username: resp.Username, Email: resp.Email},
	}
	if err := c.sessions.Save(s); err != nil {
		return nil, err
	}
	c.logger.Debug("session stored", "user_id", s.User.ID)
	return s, nil
}

// Logout forgets the stored session. Tokens are stateless, so the server
// is not contacted.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// IsAuthenticated reports whether a token is stored. Expiry is not checked
// locally; the server decides.
func (c *Client) IsAuthenticated() bool {
	s, err := c.sessions.Load()
	return err == nil && s != nil
}

// Session returns the stored session, or nil
func (c *Client) Session() (*Session, error) {
	return c.sessions.Load()
}

// Todos

func (c *Client) ListTodos(ctx context.Context) ([]models.TodoResponse, error) {
	var todos []models.TodoResponse
	if err := c.authed(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) GetTodo(ctx context.Context, id int64) (*models.TodoResponse, error) {
	var todo models.TodoResponse
	if err := c.authed(ctx, http.MethodGet, todoPath(id), nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) CreateTodo(ctx context.Context, req models.CreateTodoRequest) (*models.TodoResponse, error) {
	var todo models.TodoResponse
	if err := c.authed(ctx, http.MethodPost, "/todos", req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo sends a partial update. Only fields set in patch change.
func (c *Client) UpdateTodo(ctx context.Context, id int64, patch models.UpdateTodoRequest) (*models.TodoResponse, error) {
	var todo models.TodoResponse
	if err := c.authed(ctx, http.MethodPut, todoPath(id), patch, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) ToggleTodo(ctx context.Context, id int64) (*models.TodoResponse, error) {
	var todo models.TodoResponse
	if err := c.authed(ctx, http.MethodPatch, todoPath(id)+"/toggle", nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	return c.authed(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

func todoPath(id int64) string {
	return fmt.Sprintf("/todos/%d", id)
}

// authed runs a request with the stored token. A 401 means the token is
// no longer accepted: the session is cleared and ErrSessionExpired
// returned.
func (c *Client) authed(ctx context.Context, method, path string, body, result any) error {
	s, err := c.sessions.Load()
	if err != nil {
		return err
	}
	if s == nil {
		return ErrNotLoggedIn
	}

	err = c.do(ctx, method, path, s.Token, body, result)
	if hasStatus(err, http.StatusUnauthorized) {
		c.logger.Info("token rejected, clearing session", "method", method, "path", path)
		if clearErr := c.sessions.Clear(); clearErr != nil {
			c.logger.Warn("failed to clear session", "error", clearErr)
		}
		return ErrSessionExpired
	}
	return err
}

// do executes a request and decodes a 2xx JSON body into result (if
// non-nil). Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, data)
	}

	if result == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
