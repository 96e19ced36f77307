// Package mcp exposes the task list as Model Context Protocol tools over
// stdio. Positions are one-based, matching list_tasks output.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nick-dorsch/todo/internal/store"
	"github.com/nick-dorsch/todo/internal/view"
	"github.com/nick-dorsch/todo/pkg/models"
)

const (
	serverName    = "todo"
	serverVersion = "0.1.0"
)

// tools serializes tool calls and captures what the store renders for
// each one. It is the store's renderer while the server runs.
type tools struct {
	mu     sync.Mutex
	store  *store.Store
	logger *log.Logger

	// Written by Render, which only runs inside call while mu is held.
	rendered string
	changed  bool
}

func (t *tools) Render(tasks []models.Task) {
	t.rendered = view.Format(tasks)
	t.changed = true
}

// call runs op as a single event and returns the list as it stands
// afterwards. A no-op still returns the current list.
func (t *tools) call(name string, op func()) *mcp.CallToolResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.changed = false
	op()
	if !t.changed {
		t.rendered = view.Format(t.store.All())
	}
	t.logger.Debug("tool call", "tool", name, "changed", t.changed)
	return mcp.NewToolResultText(t.rendered)
}

// NewServer creates a new MCP server bound to st.
func NewServer(st *store.Store, logger *log.Logger) *server.MCPServer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &tools{store: st, logger: logger}
	st.SetRenderer(t)

	s := server.NewMCPServer(serverName, serverVersion)

	s.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Add a task. Tasks with a blank title or date are ignored."),
		mcp.WithString("title", mcp.Description("Task title"), mcp.Required()),
		mcp.WithString("datetime", mcp.Description("Due date and time ("+models.DatetimeLayout+")"), mcp.Required()),
	), addTaskHandler(t))

	s.AddTool(mcp.NewTool("toggle_task",
		mcp.WithDescription("Mark a task done, or mark a done task active again."),
		mcp.WithNumber("position", mcp.Description("Task number as shown by list_tasks"), mcp.Required()),
	), toggleTaskHandler(t))

	s.AddTool(mcp.NewTool("edit_task",
		mcp.WithDescription("Change a task's title and/or date. Omitted or blank fields keep their value."),
		mcp.WithNumber("position", mcp.Description("Task number as shown by list_tasks"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("datetime", mcp.Description("New date and time ("+models.DatetimeLayout+")")),
	), editTaskHandler(t))

	s.AddTool(mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task. Later tasks move up one position."),
		mcp.WithNumber("position", mcp.Description("Task number as shown by list_tasks"), mcp.Required()),
	), deleteTaskHandler(t))

	s.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List all tasks in order."),
		mcp.WithString("format", mcp.Description("Output format (text|json, defaults to text)")),
	), listTasksHandler(t))

	return s
}

// Serve answers requests read from in until in is exhausted or ctx is
// cancelled.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	err := server.NewStdioServer(s).Listen(ctx, in, out)
	if err == nil || errors.Is(err, io.EOF) || ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("mcp: %w", err)
}

// position converts the one-based position argument to an index. A
// missing position yields -1, which the store ignores.
func position(request mcp.CallToolRequest) int {
	return mcp.ParseInt(request, "position", 0) - 1
}

func addTaskHandler(t *tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title := mcp.ParseString(request, "title", "")
		datetime := mcp.ParseString(request, "datetime", "")
		return t.call("add_task", func() {
			t.store.Add(title, datetime)
		}), nil
	}
}

func toggleTaskHandler(t *tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		i := position(request)
		return t.call("toggle_task", func() {
			t.store.ToggleComplete(i)
		}), nil
	}
}

func editTaskHandler(t *tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		i := position(request)

		var title, datetime *string
		args, _ := request.Params.Arguments.(map[string]any)
		if v, ok := args["title"].(string); ok {
			title = &v
		}
		if v, ok := args["datetime"].(string); ok {
			datetime = &v
		}

		return t.call("edit_task", func() {
			t.store.Edit(i, title, datetime)
		}), nil
	}
}

func deleteTaskHandler(t *tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		i := position(request)
		return t.call("delete_task", func() {
			t.store.Remove(i)
		}), nil
	}
}

type listedTask struct {
	Position int `json:"position"`
	models.Task
}

func listTasksHandler(t *tools) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if mcp.ParseString(request, "format", "text") != "json" {
			return t.call("list_tasks", t.store.Refresh), nil
		}

		tasks := t.store.All()
		listed := make([]listedTask, len(tasks))
		for i, task := range tasks {
			listed[i] = listedTask{Position: i + 1, Task: task}
		}
		data, err := json.Marshal(map[string]interface{}{"tasks": listed})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
