// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestOptionalDecoding(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantNull  bool
		wantValue string
	}{
		{"absent", `{}`, false, false, ""},
		{"null", `{"description": null}`, true, true, ""},
		{"empty string", `{"description": ""}`, true, false, ""},
		{"value", `{"description": "hi"}`, true, false, "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTodoRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			d := req.Description
			if d.Set != tt.wantSet || d.Null != tt.wantNull || d.Value != tt.wantValue {
				t.Errorf("Got %+v", d)
			}
		})
	}

	var req UpdateTodoRequest
	if err := json.Unmarshal([]byte(`{"priority": "high"}`), &req); err == nil {
		t.Error("Expected a type error for a string priority")
	}
}

func TestOptionalEncoding(t *testing.T) {
	req := UpdateTodoRequest{
		Title:       Some("x"),
		Description: Null[string](),
	}
	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(raw), `{"title":"x","description":null}`; got != want {
		t.Errorf("Got %s, want %s", got, want)
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       RegisterRequest
		wantField string
	}{
		{"valid", RegisterRequest{"alice", "a@x.com", "pw"}, ""},
		{"unicode username at limit", RegisterRequest{strings.Repeat("é", 50), "a@x.com", "pw"}, ""},
		{"empty username", RegisterRequest{"", "a@x.com", "pw"}, "username"},
		{"long username", RegisterRequest{strings.Repeat("a", 51), "a@x.com", "pw"}, "username"},
		{"empty email", RegisterRequest{"alice", "", "pw"}, "email"},
		{"malformed email", RegisterRequest{"alice", "alice.x.com", "pw"}, "email"},
		{"display name email", RegisterRequest{"alice", "Alice <a@x.com>", "pw"}, "email"},
		{"padded email", RegisterRequest{"alice", " a@x.com", "pw"}, "email"},
		{"empty password", RegisterRequest{"alice", "a@x.com", ""}, "password"},
		{"password at bcrypt limit", RegisterRequest{"alice", "a@x.com", strings.Repeat("p", 72)}, ""},
		{"password over bcrypt limit", RegisterRequest{"alice", "a@x.com", strings.Repeat("p", 73)}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertField(t, tt.req.Validate(), tt.wantField)
		})
	}
}

func TestTodoRequestValidate(t *testing.T) {
	long := func(n int) *string { s := strings.Repeat("x", n); return &s }
	prio := func(p int) *int { return &p }

	createTests := []struct {
		name         string
		req          CreateTodoRequest
		withPriority bool
		wantField    string
	}{
		{"minimal", CreateTodoRequest{Title: "t"}, true, ""},
		{"title at limit", CreateTodoRequest{Title: *long(200)}, true, ""},
		{"title over limit", CreateTodoRequest{Title: *long(201)}, true, "title"},
		{"description at limit", CreateTodoRequest{Title: "t", Description: long(1000)}, true, ""},
		{"description over limit", CreateTodoRequest{Title: "t", Description: long(1001)}, true, "description"},
		{"priority bounds", CreateTodoRequest{Title: "t", Priority: prio(3)}, true, ""},
		{"priority out of range", CreateTodoRequest{Title: "t", Priority: prio(4)}, true, "priority"},
		{"priority in open mode", CreateTodoRequest{Title: "t", Priority: prio(1)}, false, "priority"},
	}
	for _, tt := range createTests {
		t.Run("create "+tt.name, func(t *testing.T) {
			assertField(t, tt.req.Validate(tt.withPriority), tt.wantField)
		})
	}

	updateTests := []struct {
		name      string
		req       UpdateTodoRequest
		wantField string
	}{
		{"empty patch", UpdateTodoRequest{}, ""},
		{"empty title", UpdateTodoRequest{Title: Some("")}, "title"},
		{"null title is ignored", UpdateTodoRequest{Title: Null[string]()}, ""},
		{"priority out of range", UpdateTodoRequest{Priority: Some(-1)}, "priority"},
	}
	for _, tt := range updateTests {
		t.Run("update "+tt.name, func(t *testing.T) {
			assertField(t, tt.req.Validate(true), tt.wantField)
		})
	}
}

func TestUpdateTodoRequestApply(t *testing.T) {
	desc := "keep"
	base := Todo{Title: "orig", Description: &desc, Priority: 1}

	t.Run("absent fields untouched", func(t *testing.T) {
		todo := base
		changed := (&UpdateTodoRequest{Completed: Some(true)}).Apply(&todo)
		if !changed || !todo.Completed || todo.Title != "orig" || todo.Priority != 1 || *todo.Description != "keep" {
			t.Errorf("Got %+v (changed=%v)", todo, changed)
		}
	})

	t.Run("null description clears", func(t *testing.T) {
		todo := base
		(&UpdateTodoRequest{Description: Null[string]()}).Apply(&todo)
		if todo.Description != nil {
			t.Errorf("Expected nil description, got %q", *todo.Description)
		}
	})

	t.Run("null priority ignored", func(t *testing.T) {
		todo := base
		changed := (&UpdateTodoRequest{Priority: Null[int]()}).Apply(&todo)
		if changed || todo.Priority != 1 {
			t.Errorf("Got %+v (changed=%v)", todo, changed)
		}
	})

	t.Run("does not alias the request", func(t *testing.T) {
		todo := base
		req := UpdateTodoRequest{Description: Some("new")}
		req.Apply(&todo)
		req.Description.Value = "mutated"
		if *todo.Description != "new" {
			t.Errorf("Description aliases the request: %q", *todo.Description)
		}
	})
}

func assertField(t *testing.T, err error, wantField string) {
	t.Helper()
	if wantField == "" {
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		return
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError on %s, got %v", wantField, err)
	}
	if verr.Field != wantField {
		t.Errorf("Expected error on %s, got %s", wantField, verr.Field)
	}
}
