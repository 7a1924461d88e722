// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: username, email, password
  - LoginRequest: username, password
  - CreateTodoRequest: title, description (optional), priority (optional)
  - UpdateTodoRequest: any of title, description, completed, priority

# Partial Updates

UpdateTodoRequest fields are Optional values, which remember whether the
key was present at all:

	{"completed": true}        → only Completed.Set
	{"description": null}      → Description.Set && Description.Null

Apply copies present fields onto a Todo and leaves the rest untouched.

# Response Types

  - AuthResponse: userId, username, email, token, expiresAt
  - TodoResponse: id, title, description, completed, priority, createdAt, updatedAt
  - OpenTodoResponse: TodoResponse without priority (open mode)
  - ErrorResponse: error, message

# Domain Types

  - User: account row; PasswordHash is never serialized
  - Todo: todo row including owner id and version

# Validation

Validate methods return *ValidationError, which handlers map to 400:

	if err := req.Validate(true); err != nil {
		// 400
	}

Limits: username ≤50, email ≤100, password ≤72 bytes, title 1–200,
description ≤1000, priority 0–3.
*/
package models
