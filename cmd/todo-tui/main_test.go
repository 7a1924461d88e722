package main

import (
	"path/filepath"
	"testing"
)

func TestParseFlagsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TODO_API_URL", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if opts.apiURL != defaultAPIURL {
		t.Errorf("apiURL = %q", opts.apiURL)
	}
	if want := filepath.Join("/tmp/xdg", "todo", "session.json"); opts.sessionPath != want {
		t.Errorf("sessionPath = %q, want %q", opts.sessionPath, want)
	}
}

func TestParseFlagsPrecedence(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TODO_API_URL", "http://env:1/api")

	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.apiURL != "http://env:1/api" {
		t.Errorf("env should be used without a flag, got %q", opts.apiURL)
	}

	opts, err = parseFlags([]string{"--api", "http://flag:2/api", "--session", "/x/s.json"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.apiURL != "http://flag:2/api" || opts.sessionPath != "/x/s.json" {
		t.Errorf("flags should win, got %+v", opts)
	}
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	if _, err := parseFlags([]string{"--nope"}); err == nil {
		t.Error("Expected an error for an unknown flag")
	}
}
