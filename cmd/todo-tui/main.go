package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/danielhkuo/tickoff/client"
	"github.com/danielhkuo/tickoff/tui"
)

const defaultAPIURL = "http://localhost:3318/api"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "todo-tui:", err)
		os.Exit(1)
	}
}

type options struct {
	apiURL      string
	sessionPath string
	logFile     string
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("todo-tui", pflag.ContinueOnError)
	fs.StringVar(&opts.apiURL, "api", "", "API base URL (env TODO_API_URL)")
	fs.StringVar(&opts.sessionPath, "session", "", "Where the login session is stored")
	fs.StringVar(&opts.logFile, "log-file", "", "Write debug logs to this file")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	// A local .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return options{}, fmt.Errorf("loading .env: %w", err)
	}

	if opts.apiURL == "" {
		opts.apiURL = os.Getenv("TODO_API_URL")
	}
	if opts.apiURL == "" {
		opts.apiURL = defaultAPIURL
	}

	if opts.sessionPath == "" {
		path, err := defaultSessionPath()
		if err != nil {
			return options{}, err
		}
		opts.sessionPath = path
	}
	return opts, nil
}

// defaultSessionPath is $XDG_CONFIG_HOME/todo/session.json, or the
// platform config dir when XDG_CONFIG_HOME is unset
func defaultSessionPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("locating config dir (use --session): %w", err)
		}
	}
	return filepath.Join(dir, "todo", "session.json"), nil
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere
	logger := slog.New(slog.DiscardHandler)
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	sessions := client.NewFileStore(opts.sessionPath)
	api := client.New(opts.apiURL, sessions, client.WithLogger(logger))
	logger.Info("Starting", "api", opts.apiURL, "session", sessions.Path())

	_, err = tea.NewProgram(tui.NewModel(api), tea.WithAltScreen()).Run()
	return err
}
