// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielhkuo/tickoff/models"
)

// ErrSessionExpired is returned when the server rejects the stored token.
// The session has already been cleared when the caller sees it.
var ErrSessionExpired = errors.New("session expired, please log in again")

// ErrNotLoggedIn is returned by todo calls made without a stored session.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx response other than an expired session.
type APIError struct {
	StatusCode int
	Message    string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", err.StatusCode, err.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is a 409, i.e. the todo changed on the
// server since it was read.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsForbidden reports whether err is a 403 from the API.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == status
}

// parseAPIError builds an APIError from the server's error body, falling
// back to the raw body or the status text when it isn't JSON.
func parseAPIError(status int, body []byte) *APIError {
	var resp models.ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		switch {
		case resp.Message != "":
			return &APIError{StatusCode: status, Message: resp.Message}
		case resp.Error != "":
			return &APIError{StatusCode: status, Message: resp.Error}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return &APIError{StatusCode: status, Message: text}
	}
	return &APIError{StatusCode: status, Message: http.StatusText(status)}
}
