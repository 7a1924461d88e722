// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"net/mail"
	"unicode/utf8"
)

// ValidationError reports malformed or out-of-range input. Handlers map it
// to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks registration input
func (r *RegisterRequest) Validate() error {
	if n := utf8.RuneCountInString(r.Username); n == 0 || n > MaxUsernameLen {
		return invalid("username", "must be 1-%d characters", MaxUsernameLen)
	}
	if n := utf8.RuneCountInString(r.Email); n == 0 || n > MaxEmailLen {
		return invalid("email", "must be 1-%d characters", MaxEmailLen)
	}
	// Only a bare address; display names and angle brackets would let one
	// mailbox be stored under several spellings
	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		return invalid("email", "is not a valid address")
	}
	if len(r.Password) == 0 || len(r.Password) > MaxPasswordBytes {
		return invalid("password", "must be 1-%d bytes", MaxPasswordBytes)
	}
	return nil
}

// Validate checks login input. Only presence is checked so that a bad
// password never produces a different error than an unknown user.
func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return invalid("username", "is required")
	}
	if r.Password == "" {
		return invalid("password", "is required")
	}
	return nil
}

// Validate checks create input. withPriority is false when the server runs
// in open mode, where priority is not part of the API.
func (r *CreateTodoRequest) Validate(withPriority bool) error {
	if err := validateTitle(r.Title); err != nil {
		return err
	}
	if r.Description != nil {
		if err := validateDescription(*r.Description); err != nil {
			return err
		}
	}
	if r.Priority != nil {
		if !withPriority {
			return invalid("priority", "is not supported")
		}
		if err := validatePriority(*r.Priority); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks only the fields present in the patch.
func (r *UpdateTodoRequest) Validate(withPriority bool) error {
	if r.Title.Present() {
		if err := validateTitle(r.Title.Value); err != nil {
			return err
		}
	}
	if r.Description.Present() {
		if err := validateDescription(r.Description.Value); err != nil {
			return err
		}
	}
	if r.Priority.Present() {
		if !withPriority {
			return invalid("priority", "is not supported")
		}
		if err := validatePriority(r.Priority.Value); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the present fields onto t. A null description clears it;
// null for any other field leaves it as is. Returns true if anything was
// present in the patch.
func (r *UpdateTodoRequest) Apply(t *Todo) bool {
	changed := false
	if r.Title.Present() {
		t.Title = r.Title.Value
		changed = true
	}
	if r.Description.Set {
		if r.Description.Null {
			t.Description = nil
		} else {
			d := r.Description.Value
			t.Description = &d
		}
		changed = true
	}
	if r.Completed.Present() {
		t.Completed = r.Completed.Value
		changed = true
	}
	if r.Priority.Present() {
		t.Priority = r.Priority.Value
		changed = true
	}
	return changed
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n == 0 || n > MaxTitleLen {
		return invalid("title", "must be 1-%d characters", MaxTitleLen)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return invalid("description", "must be at most %d characters", MaxDescriptionLen)
	}
	return nil
}

func validatePriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return invalid("priority", "must be between %d and %d", MinPriority, MaxPriority)
	}
	return nil
}
