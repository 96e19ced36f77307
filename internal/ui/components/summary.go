package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nick-dorsch/todo/pkg/models"
)

var (
	summaryHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Padding(0, 1)

	activeCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)

	completedCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	summaryTextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Italic(true)
)

// Summary shows how many tasks are active and completed.
type Summary struct {
	Active    int
	Completed int
	Title     string
}

func NewSummary() *Summary {
	return &Summary{
		Title: "Tasks",
	}
}

// Render recounts from a full snapshot.
func (s *Summary) Render(tasks []models.Task) {
	s.Active, s.Completed = 0, 0
	for _, t := range tasks {
		switch t.Status() {
		case models.TaskStatusCompleted:
			s.Completed++
		default:
			s.Active++
		}
	}
}

func (s *Summary) View() string {
	counts := fmt.Sprintf("%s %s %s %s",
		activeCountStyle.Render(fmt.Sprintf("%d", s.Active)),
		summaryTextStyle.Render("active ·"),
		completedCountStyle.Render(fmt.Sprintf("%d", s.Completed)),
		summaryTextStyle.Render("completed"),
	)
	if s.Title == "" {
		return counts
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, summaryHeaderStyle.Render(s.Title), " ", counts)
}
