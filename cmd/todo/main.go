package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/nick-dorsch/todo/internal/config"
	"github.com/nick-dorsch/todo/internal/logging"
	"github.com/nick-dorsch/todo/internal/mcp"
	"github.com/nick-dorsch/todo/internal/shell"
	"github.com/nick-dorsch/todo/internal/store"
	"github.com/nick-dorsch/todo/internal/ui"
)

var version = "dev"

// Swapped out in tests.
var (
	runMenu = ui.RunMenu
	runTUI  = ui.Run
)

const usage = `Usage: todo [flags] [command]

Commands:
  tui       full-screen task list
  shell     line-oriented prompt (reads stdin, so it can be scripted)
  mcp       serve the task list as MCP tools on stdio
  version   print the version

With no command, a menu offers tui or shell.

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	command := fs.Arg(0)
	if command == "version" {
		fmt.Fprintf(stdout, "todo %s\n", version)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}

	if command == "" {
		selected, err := runMenu(ctx, cfg.Keys)
		if err != nil {
			return fmt.Errorf("running menu: %w", err)
		}
		if selected == "" {
			return nil
		}
		command = selected
	}

	switch command {
	case "tui":
		// The terminal belongs to the UI: log to the configured file or nowhere.
		return withLogger(cfg, io.Discard, func(st *store.Store, logger *log.Logger) error {
			return runTUI(ctx, st, cfg.Keys, logger)
		})
	case "shell":
		return withLogger(cfg, stderr, func(st *store.Store, logger *log.Logger) error {
			return shell.New(st, stdin, stdout, logger).Run(ctx)
		})
	case "mcp":
		return withLogger(cfg, stderr, func(st *store.Store, logger *log.Logger) error {
			logger.Info("mcp server started")
			return mcp.Serve(ctx, mcp.NewServer(st, logger), stdin, stdout)
		})
	default:
		fs.Usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// withLogger opens the session logger and an empty store, then runs fn.
func withLogger(cfg *config.Config, fallback io.Writer, fn func(*store.Store, *log.Logger) error) error {
	logger, closer, err := logging.Open(cfg.Log, fallback, logging.NewSessionID())
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}
	return fn(store.New(logger), logger)
}
