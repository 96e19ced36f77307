package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nick-dorsch/todo/internal/config"
)

var (
	logoStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	itemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("12")).Bold(true)
	hintStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const logo = `
 _____ ___  ___   ___
|_   _/ _ \|   \ / _ \
  | || (_) | |) | (_) |
  |_| \___/|___/ \___/
`

type menuChoice struct {
	command string
	help    string
}

var menuChoices = []menuChoice{
	{"tui", "full-screen task list"},
	{"shell", "line-oriented prompt"},
}

// MenuModel lets the user pick a frontend when no command is given.
type MenuModel struct {
	choices  []menuChoice
	keys     config.Keymap
	cursor   int
	selected string
	quitting bool
}

func NewMenuModel(keys config.Keymap) MenuModel {
	return MenuModel{
		choices: menuChoices,
		keys:    keys,
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", m.keys.Quit, m.keys.Cancel:
		m.quitting = true
		return m, tea.Quit
	case "up", m.keys.Up:
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", m.keys.Down:
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case m.keys.Confirm:
		m.selected = m.choices[m.cursor].command
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var s strings.Builder

	s.WriteString(logoStyle.Render(logo))
	s.WriteString("\n\n")

	for i, c := range m.choices {
		line := fmt.Sprintf("%-6s %s", c.command, hintStyle.Render(c.help))
		if m.cursor == i {
			s.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			s.WriteString(itemStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}

	fmt.Fprintf(&s, "\n(%s/%s to navigate, %s to select, %s to quit)\n",
		m.keys.Up, m.keys.Down, m.keys.Confirm, m.keys.Quit)

	return s.String()
}

// Selected returns the chosen command, or "" if the user quit.
func (m MenuModel) Selected() string {
	return m.selected
}

// RunMenu shows the menu and returns the chosen command, or "" if the
// user quit.
func RunMenu(ctx context.Context, keys config.Keymap) (string, error) {
	p := tea.NewProgram(NewMenuModel(keys), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", nil
		}
		return "", fmt.Errorf("menu: %w", err)
	}
	return finalModel.(MenuModel).Selected(), nil
}
