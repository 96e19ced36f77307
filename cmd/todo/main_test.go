package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nick-dorsch/todo/internal/config"
	"github.com/nick-dorsch/todo/internal/store"
)

// isolate keeps config lookup away from the developer's own files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	t.Setenv("TODO_LOG_LEVEL", "")
	t.Setenv("TODO_LOG_FORMAT", "")
	t.Setenv("TODO_LOG_FILE", "")
	return dir
}

func stubMenu(t *testing.T, selection string) *bool {
	t.Helper()
	original := runMenu
	t.Cleanup(func() { runMenu = original })

	called := false
	runMenu = func(ctx context.Context, keys config.Keymap) (string, error) {
		called = true
		return selection, nil
	}
	return &called
}

func TestExecuteVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := execute(context.Background(), []string{"version"}, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "todo ") {
		t.Errorf("unexpected version output %q", stdout.String())
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), []string{"frobnicate"}, strings.NewReader(""), &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "unknown command: frobnicate") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Usage: todo") {
		t.Errorf("expected usage on stderr, got %q", stderr.String())
	}
}

func TestExecuteShell(t *testing.T) {
	isolate(t)

	script := "add 2025-01-01T00:00 A\nadd 2025-01-02T00:00 B\ndone 1\nrm 2\n"
	var stdout, stderr bytes.Buffer
	if err := execute(context.Background(), []string{"shell"}, strings.NewReader(script), &stdout, &stderr); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "   1  [x] A (2025-01-01T00:00)") {
		t.Errorf("expected final list on stdout, got:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "shell started") {
		t.Errorf("expected shell logs on stderr, got:\n%s", stderr.String())
	}
}

func TestExecuteVerboseLogsDebug(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), []string{"-verbose", "shell"}, strings.NewReader("add 2025-01-01T00:00 A\n"), &stdout, &stderr)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "task added") {
		t.Errorf("expected debug logs with -verbose, got:\n%s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "session") {
		t.Errorf("expected session key in logs, got:\n%s", stderr.String())
	}
}

func TestExecuteConfigFile(t *testing.T) {
	dir := isolate(t)
	logFile := filepath.Join(dir, "logs", "todo.log")
	configPath := filepath.Join(dir, "custom.toml")
	cfg := "[log]\nlevel = \"debug\"\nformat = \"logfmt\"\nfile = \"" + logFile + "\"\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), []string{"-config", configPath, "shell"}, strings.NewReader("add 2025-01-01T00:00 A\n"), &stdout, &stderr)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("expected logs to go to the file, got stderr %q", stderr.String())
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "msg=\"task added\"") {
		t.Errorf("expected logfmt debug entry, got:\n%s", data)
	}
}

func TestExecuteMissingConfigFile(t *testing.T) {
	dir := isolate(t)

	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), []string{"-config", filepath.Join(dir, "nope.toml"), "shell"}, strings.NewReader(""), &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestExecuteMenuQuit(t *testing.T) {
	isolate(t)
	called := stubMenu(t, "")

	var stdout, stderr bytes.Buffer
	if err := execute(context.Background(), nil, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !*called {
		t.Error("expected menu to run without a command")
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no output, got %q", stdout.String())
	}
}

func TestExecuteMenuSelectsShell(t *testing.T) {
	isolate(t)
	stubMenu(t, "shell")

	var stdout, stderr bytes.Buffer
	if err := execute(context.Background(), nil, strings.NewReader("add 2025-01-01T00:00 A\n"), &stdout, &stderr); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "   1  [ ] A (2025-01-01T00:00)") {
		t.Errorf("expected shell to run after menu selection, got:\n%s", stdout.String())
	}
}

func TestExecuteTUIUsesKeymap(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "todo.toml"), []byte("[keys]\nadd = \"n\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	original := runTUI
	t.Cleanup(func() { runTUI = original })

	called := false
	runTUI = func(ctx context.Context, st *store.Store, keys config.Keymap, logger *log.Logger) error {
		called = true
		if keys.Add != "n" {
			t.Errorf("expected add key from ./todo.toml, got %q", keys.Add)
		}
		if st.Len() != 0 {
			t.Errorf("expected empty store at start")
		}
		return nil
	}

	var stdout, stderr bytes.Buffer
	if err := execute(context.Background(), []string{"tui"}, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called {
		t.Error("expected tui to run")
	}
	if stderr.Len() != 0 {
		t.Errorf("expected tui logging to stay off stderr, got %q", stderr.String())
	}
}

func TestExecuteMCP(t *testing.T) {
	isolate(t)

	// Closing stdin ends the session.
	var stdout, stderr bytes.Buffer
	if err := execute(context.Background(), []string{"mcp"}, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "mcp server started") {
		t.Errorf("expected startup log, got %q", stderr.String())
	}
}
