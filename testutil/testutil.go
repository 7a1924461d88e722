// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/tickoff/auth"
	"github.com/danielhkuo/tickoff/cliparse"
	"github.com/danielhkuo/tickoff/db"
	"github.com/danielhkuo/tickoff/models"
	"github.com/danielhkuo/tickoff/store"
)

// TestJWTSecret signs every token minted by tests
const TestJWTSecret = "test-jwt-secret-0123456789"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Every call gets its own database, closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.DialectSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		JWTSecret:    TestJWTSecret,
		TokenTTL:     time.Hour,
		BcryptCost:   bcrypt.MinCost,
		CORSOrigins:  cliparse.DefaultCORSOrigins,
		Mode:         models.ModeAuth,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// GetOpenTestConfig returns a configuration for the account-less mode
func GetOpenTestConfig() cliparse.Config {
	cfg := GetTestConfig()
	cfg.Mode = models.ModeOpen
	return cfg
}

// CreateTestUser inserts a user with the given password and returns it with
// a valid bearer token for cfg
func CreateTestUser(t *testing.T, conn *sql.DB, cfg cliparse.Config, username, password string) (*models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		CreatedAt:    store.Now(),
	}
	if err := store.New(conn).CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, _, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL).Issue(user.ID, user.Username)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}

	return user, token
}

// CreateTestTodo inserts a todo owned by ownerID (0 for none) created at createdAt
func CreateTestTodo(t *testing.T, conn *sql.DB, ownerID int64, title string, createdAt time.Time) *models.Todo {
	t.Helper()

	todo := &models.Todo{
		Title:     title,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}
	if ownerID != 0 {
		todo.UserID = &ownerID
	}
	if err := store.New(conn).CreateTodo(context.Background(), todo); err != nil {
		t.Fatalf("Failed to create test todo: %v", err)
	}

	return todo
}

// BearerHeader builds the Authorization header map for MakeRequest
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var raw []byte
		if s, ok := body.(string); ok {
			raw = []byte(s)
		} else {
			raw, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
