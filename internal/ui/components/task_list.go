package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/nick-dorsch/todo/internal/view"
	"github.com/nick-dorsch/todo/pkg/models"
)

var (
	rowStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedRowStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(lipgloss.Color("12")).
				Bold(true)

	completedTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Strikethrough(true)

	datetimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Padding(0, 1)

	scrollbarTrackStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("236"))

	scrollbarHandleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))
)

// TaskList draws the task list with a cursor. It is bound to the store as
// its renderer: every Render rebuilds all rows from the snapshot, so the
// positions it hands out always match the store.
type TaskList struct {
	tasks    []models.Task
	cursor   int
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	// ShowCursor is false while a form has focus.
	ShowCursor bool
	EmptyText  string
}

func NewTaskList(width, height int) *TaskList {
	return &TaskList{
		viewport:   viewport.New(width, height),
		width:      width,
		height:     height,
		ShowCursor: true,
		EmptyText:  "No tasks yet.",
	}
}

// Render replaces the displayed tasks.
func (l *TaskList) Render(tasks []models.Task) {
	l.tasks = tasks
	l.cursor = clamp(l.cursor, len(tasks))
	l.updateContent()
}

func (l *TaskList) SetSize(width, height int) {
	l.width = width
	l.height = height
	vpWidth := width
	if width > 0 {
		vpWidth = width - 1
	}
	if !l.ready {
		l.viewport = viewport.New(vpWidth, height)
		l.ready = true
	} else {
		l.viewport.Width = vpWidth
		l.viewport.Height = height
	}
	l.updateContent()
}

// MoveCursor moves the selection by delta rows, stopping at either end.
func (l *TaskList) MoveCursor(delta int) {
	l.cursor = clamp(l.cursor+delta, len(l.tasks))
	l.updateContent()
}

// Cursor returns the selected position.
func (l *TaskList) Cursor() int {
	return l.cursor
}

// SetCursor selects position i, clamped to the list.
func (l *TaskList) SetCursor(i int) {
	l.cursor = clamp(i, len(l.tasks))
	l.updateContent()
}

func (l *TaskList) Selected() (models.Task, bool) {
	if len(l.tasks) == 0 {
		return models.Task{}, false
	}
	return l.tasks[l.cursor], true
}

func (l *TaskList) Len() int {
	return len(l.tasks)
}

func (l *TaskList) Tasks() []models.Task {
	return l.tasks
}

func (l *TaskList) updateContent() {
	l.viewport.SetContent(l.rows())

	// Keep the cursor row on screen.
	if l.viewport.Height <= 0 {
		return
	}
	if l.cursor < l.viewport.YOffset {
		l.viewport.SetYOffset(l.cursor)
	} else if l.cursor >= l.viewport.YOffset+l.viewport.Height {
		l.viewport.SetYOffset(l.cursor - l.viewport.Height + 1)
	}
}

func (l *TaskList) rows() string {
	if len(l.tasks) == 0 {
		return emptyStyle.Render(l.EmptyText)
	}

	lines := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		lines[i] = l.row(i, t)
	}
	return strings.Join(lines, "\n")
}

func (l *TaskList) row(i int, t models.Task) string {
	pointer := " "
	style := rowStyle
	if l.ShowCursor && i == l.cursor {
		pointer = ">"
		style = selectedRowStyle
	}

	title := t.Title
	if t.Completed {
		title = completedTitleStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s %s", pointer, view.Checkbox(t), title)
	if t.Datetime != "" {
		line += " " + datetimeStyle.Render("("+t.Datetime+")")
	}

	if l.width > 0 {
		return style.Copy().MaxWidth(l.width - 1).Render(line)
	}
	return style.Render(line)
}

func (l *TaskList) View() string {
	if !l.ready {
		return l.rows()
	}

	if l.viewport.TotalLineCount() <= l.viewport.Height {
		return l.viewport.View()
	}

	h := l.viewport.Height
	percent := l.viewport.ScrollPercent()

	handlePos := int(float64(h-1) * percent)

	var sb strings.Builder
	for i := 0; i < h; i++ {
		if i == handlePos {
			sb.WriteString(scrollbarHandleStyle.Render("┃"))
		} else {
			sb.WriteString(scrollbarTrackStyle.Render("│"))
		}
		if i < h-1 {
			sb.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, l.viewport.View(), sb.String())
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
