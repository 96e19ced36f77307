// Package view formats the task list as plain text.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/nick-dorsch/todo/pkg/models"
)

const emptyList = "no tasks"

// Format renders every task on its own line, numbered from 1.
// Format: "{N:>4}  [x] {TITLE} ({DATETIME})"
func Format(tasks []models.Task) string {
	if len(tasks) == 0 {
		return emptyList + "\n"
	}

	var b strings.Builder
	for i, t := range tasks {
		FormatTask(&b, i+1, t)
	}
	return b.String()
}

// FormatTask writes a single numbered task line.
func FormatTask(w io.Writer, num int, t models.Task) {
	fmt.Fprintf(w, "%4d  %s %s", num, Checkbox(t), normalizeTitle(t.Title))
	if t.Datetime != "" {
		fmt.Fprintf(w, " (%s)", t.Datetime)
	}
	fmt.Fprintln(w)
}

func Checkbox(t models.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// ToggleLabel names the toggle action for a task in its current state.
func ToggleLabel(t models.Task) string {
	if t.Completed {
		return "undo"
	}
	return "done"
}

// normalizeTitle keeps a task on a single line.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	return strings.ReplaceAll(title, "\n", " ")
}

// Writer is a store renderer that prints the whole list to W.
type Writer struct {
	W io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{W: w}
}

func (v *Writer) Render(tasks []models.Task) {
	io.WriteString(v.W, Format(tasks))
}
