package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/nick-dorsch/todo/pkg/models"
)

func sampleTasks(n int) []models.Task {
	tasks := make([]models.Task, n)
	for i := range tasks {
		tasks[i] = models.Task{
			Title:    fmt.Sprintf("task%d", i+1),
			Datetime: fmt.Sprintf("2025-01-%02dT10:00", i+1),
		}
	}
	return tasks
}

func TestTaskListRender(t *testing.T) {
	l := NewTaskList(80, 10)
	l.SetSize(80, 10)

	tasks := sampleTasks(2)
	tasks[1].Completed = true
	l.Render(tasks)

	view := l.View()
	if !strings.Contains(view, "> [ ] task1") {
		t.Errorf("expected cursor on first task, got:\n%s", view)
	}
	if !strings.Contains(view, "[x]") {
		t.Errorf("expected completed checkbox")
	}
	if !strings.Contains(view, "(2025-01-02T10:00)") {
		t.Errorf("expected datetime in view")
	}
}

func TestTaskListEmptyState(t *testing.T) {
	l := NewTaskList(80, 10)
	l.EmptyText = "Nothing here"
	l.Render(nil)

	if !strings.Contains(l.View(), "Nothing here") {
		t.Errorf("expected placeholder when no tasks, got %q", l.View())
	}
	if _, ok := l.Selected(); ok {
		t.Errorf("expected no selection on empty list")
	}
}

func TestTaskListCursorClampsAfterRender(t *testing.T) {
	l := NewTaskList(80, 10)
	l.Render(sampleTasks(3))
	l.MoveCursor(2)
	if l.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor())
	}

	// The last task disappears: the cursor follows the shorter list.
	l.Render(sampleTasks(2))
	if l.Cursor() != 1 {
		t.Errorf("expected cursor clamped to 1, got %d", l.Cursor())
	}

	l.Render(nil)
	if l.Cursor() != 0 {
		t.Errorf("expected cursor 0 on empty list, got %d", l.Cursor())
	}
}

func TestTaskListMoveCursorBounds(t *testing.T) {
	l := NewTaskList(80, 10)
	l.Render(sampleTasks(3))

	l.MoveCursor(-1)
	if l.Cursor() != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", l.Cursor())
	}
	l.MoveCursor(10)
	if l.Cursor() != 2 {
		t.Errorf("expected cursor to stop at 2, got %d", l.Cursor())
	}
	task, ok := l.Selected()
	if !ok || task.Title != "task3" {
		t.Errorf("expected task3 selected, got %+v", task)
	}
}

func TestTaskListHiddenCursor(t *testing.T) {
	l := NewTaskList(80, 10)
	l.SetSize(80, 10)
	l.ShowCursor = false
	l.Render(sampleTasks(1))

	if strings.Contains(l.View(), ">") {
		t.Errorf("expected no cursor marker when hidden")
	}
}

func TestTaskListScrollbar(t *testing.T) {
	l := NewTaskList(30, 3)
	l.SetSize(30, 3)
	l.Render(sampleTasks(10))
	l.MoveCursor(9)

	view := l.View()
	if !strings.Contains(view, "┃") {
		t.Errorf("expected scrollbar handle")
	}
	if !strings.Contains(view, "task10") {
		t.Errorf("expected cursor row to be scrolled into view, got:\n%s", view)
	}
}

func TestTaskListWidth(t *testing.T) {
	width := 20
	l := NewTaskList(width, 5)
	l.SetSize(width, 5)
	l.Render([]models.Task{{Title: strings.Repeat("long ", 20), Datetime: "2025-01-01T00:00"}})

	for _, line := range strings.Split(l.View(), "\n") {
		if w := lipgloss.Width(line); w > width {
			t.Errorf("line too wide: %d > %d. Line: %q", w, width, line)
		}
	}
}

func TestSummary(t *testing.T) {
	s := NewSummary()
	tasks := sampleTasks(3)
	tasks[0].Completed = true
	s.Render(tasks)

	if s.Active != 2 || s.Completed != 1 {
		t.Errorf("expected 2 active / 1 completed, got %d / %d", s.Active, s.Completed)
	}
	view := s.View()
	if !strings.Contains(view, "Tasks") || !strings.Contains(view, "completed") {
		t.Errorf("unexpected summary view: %q", view)
	}

	s.Render(nil)
	if s.Active != 0 || s.Completed != 0 {
		t.Errorf("expected counts reset, got %d / %d", s.Active, s.Completed)
	}
}
