// Package shell runs the task list as a line-oriented prompt, reading
// commands from any reader so sessions can be scripted.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nick-dorsch/todo/internal/store"
	"github.com/nick-dorsch/todo/internal/view"
	"github.com/nick-dorsch/todo/pkg/models"
)

const prompt = "> "

type command struct {
	names    []string
	usage    string
	synopsis string
	run      func(s *Shell, args []string)
}

var commands = []command{
	{[]string{"add"}, "add [<datetime> <title...>]", "Add a task", (*Shell).add},
	{[]string{"done", "toggle"}, "done <n>", "Mark a task done, or undo it", (*Shell).toggle},
	{[]string{"edit"}, "edit <n>", "Change a task's title or date", (*Shell).edit},
	{[]string{"rm", "delete"}, "rm <n>", "Delete a task", (*Shell).remove},
	{[]string{"list", "ls"}, "list", "Show all tasks", (*Shell).list},
	{[]string{"help"}, "help", "Show this help", (*Shell).help},
	{[]string{"quit", "exit"}, "quit", "Leave the shell", nil},
}

// Shell reads commands line by line and applies them to the store. It is
// the store's renderer, so every applied change prints the whole list.
type Shell struct {
	store  *store.Store
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Logger

	commands []command
	byName   map[string]command
}

func New(st *store.Store, in io.Reader, out io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Shell{
		store:  st,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,

		commands: commands,
		byName:   make(map[string]command),
	}
	for _, c := range s.commands {
		for _, name := range c.names {
			s.byName[name] = c
		}
	}
	st.SetRenderer(view.NewWriter(out))
	return s
}

// Run reads commands until quit, end of input or ctx is cancelled. Input
// is only checked for cancellation between lines.
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Info("shell started")
	for ctx.Err() == nil {
		fmt.Fprint(s.out, prompt)
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			break
		}
		if !s.Exec(line) {
			break
		}
	}
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	s.logger.Info("shell stopped", "tasks", s.store.Len())
	return nil
}

// Exec runs a single command line. It returns false when the line asks
// the shell to stop.
func (s *Shell) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	c, ok := s.byName[name]
	if !ok {
		fmt.Fprintf(s.out, "error: unknown command: %s (try 'help')\n", fields[0])
		return true
	}
	if c.run == nil {
		return false
	}

	s.logger.Debug("command", "name", c.names[0], "args", args)
	c.run(s, args)
	return true
}

// PromptEdit asks for each field in turn. An empty answer keeps the
// current value.
func (s *Shell) PromptEdit(current models.Task, reply func(store.EditRequest)) {
	var req store.EditRequest
	if title := s.ask(fmt.Sprintf("Edit task title [%s]: ", current.Title)); title != "" {
		req.Title = &title
	}
	if datetime := s.ask(fmt.Sprintf("Edit date & time (%s) [%s]: ", models.DatetimeLayout, current.Datetime)); datetime != "" {
		req.Datetime = &datetime
	}
	reply(req)
}

func (s *Shell) add(args []string) {
	var title, datetime string
	if len(args) == 0 {
		title = s.ask("Title: ")
		datetime = s.ask(fmt.Sprintf("Date & time (%s): ", models.DatetimeLayout))
	} else {
		datetime = args[0]
		title = strings.Join(args[1:], " ")
	}
	s.store.Add(title, datetime)
}

func (s *Shell) toggle(args []string) {
	if i, ok := s.position(args); ok {
		s.store.ToggleComplete(i)
	}
}

func (s *Shell) edit(args []string) {
	if i, ok := s.position(args); ok {
		s.store.RequestEdit(i, s)
	}
}

func (s *Shell) remove(args []string) {
	if i, ok := s.position(args); ok {
		s.store.Remove(i)
	}
}

func (s *Shell) list([]string) {
	s.store.Refresh()
}

func (s *Shell) help([]string) {
	fmt.Fprintln(s.out, "Commands:")
	for _, c := range s.commands {
		fmt.Fprintf(s.out, "  %-28s %s\n", c.usage, c.synopsis)
	}
	fmt.Fprintln(s.out, "Task numbers are the ones shown by list.")
}

func (s *Shell) position(args []string) (int, bool) {
	i, err := parsePosition(args)
	if err != nil {
		if errors.Is(err, ErrPositionRequired) {
			fmt.Fprintln(s.out, "error: task number required")
		} else {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		return 0, false
	}
	return i, true
}

// ask prints label and reads one answer. End of input answers "".
func (s *Shell) ask(label string) string {
	fmt.Fprint(s.out, label)
	line, _ := s.readLine()
	return strings.TrimSpace(line)
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimRight(s.in.Text(), "\r"), true
}
