// Package logging builds the structured logger shared by all frontends.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nick-dorsch/todo/internal/config"
)

// NewSessionID returns an identifier for one run of the program. The task
// list lives exactly as long as the session.
func NewSessionID() string {
	return uuid.NewString()
}

// New creates a logger writing to w, tagged with the session ID.
func New(w io.Writer, cfg config.LogConfig, sessionID string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(cfg.Level),
		Formatter:       ParseFormatter(cfg.Format),
		ReportTimestamp: true,
		Prefix:          "todo",
	})
	if sessionID != "" {
		logger = logger.With("session", sessionID)
	}
	return logger
}

// Open creates a logger for cfg. When cfg.File is set, logs are appended
// to that file; otherwise they go to fallback. The returned closer must be
// closed when logging is done.
func Open(cfg config.LogConfig, fallback io.Writer, sessionID string) (*log.Logger, io.Closer, error) {
	if cfg.File == "" {
		return New(fallback, cfg, sessionID), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, cfg, sessionID), f, nil
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name, defaulting to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
