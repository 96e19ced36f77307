// Package config loads settings for the todo binary.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	fileName = "todo.toml"
	appDir   = "todo"
)

// Config is the full configuration.
type Config struct {
	Log  LogConfig `toml:"log"`
	Keys Keymap    `toml:"keys"`

	// Path is the file the config was read from, empty when none was found.
	Path string `toml:"-"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Keymap binds TUI actions to keys, using bubbletea key names.
type Keymap struct {
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Add       string `toml:"add"`
	Toggle    string `toml:"toggle"`
	Edit      string `toml:"edit"`
	Delete    string `toml:"delete"`
	Quit      string `toml:"quit"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	NextField string `toml:"next_field"`
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json", "logfmt"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Keys: DefaultKeymap(),
	}
}

func DefaultKeymap() Keymap {
	return Keymap{
		Up:        "k",
		Down:      "j",
		Add:       "a",
		Toggle:    "x",
		Edit:      "e",
		Delete:    "d",
		Quit:      "q",
		Confirm:   "enter",
		Cancel:    "esc",
		NextField: "tab",
	}
}

// Load builds the configuration from defaults, the config file and the
// environment, in that order. An explicit path must exist; otherwise a
// missing file is skipped.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.Path = path
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks in the working directory first, then in the user
// config directory.
func findConfigFile() string {
	candidates := []string{fileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, appDir, fileName))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TODO_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// Validate checks log settings and key bindings.
func (c *Config) Validate() error {
	var errs []error

	if !contains(validLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("invalid log level %q (want one of %s)", c.Log.Level, strings.Join(validLevels, ", ")))
	}
	if !contains(validFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("invalid log format %q (want one of %s)", c.Log.Format, strings.Join(validFormats, ", ")))
	}
	if err := c.Keys.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate rejects empty bindings and keys bound to more than one action.
func (k Keymap) Validate() error {
	seen := make(map[string]string)
	for _, b := range k.bindings() {
		if b.key == "" {
			return fmt.Errorf("key binding for %s is empty", b.action)
		}
		if prev, ok := seen[b.key]; ok {
			return fmt.Errorf("key %q bound to both %s and %s", b.key, prev, b.action)
		}
		seen[b.key] = b.action
	}
	return nil
}

type binding struct {
	action string
	key    string
}

func (k Keymap) bindings() []binding {
	return []binding{
		{"up", k.Up},
		{"down", k.Down},
		{"add", k.Add},
		{"toggle", k.Toggle},
		{"edit", k.Edit},
		{"delete", k.Delete},
		{"quit", k.Quit},
		{"confirm", k.Confirm},
		{"cancel", k.Cancel},
		{"next_field", k.NextField},
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
