// Package ui provides the terminal interface for the task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nick-dorsch/todo/internal/config"
	"github.com/nick-dorsch/todo/internal/store"
	"github.com/nick-dorsch/todo/internal/ui/components"
	"github.com/nick-dorsch/todo/internal/view"
	"github.com/nick-dorsch/todo/pkg/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Padding(1, 2, 0, 2)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, true, true, false).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Margin(1, 0, 0, 2)

	formTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(1, 2, 0, 2)
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

const (
	fieldTitle = iota
	fieldDatetime
)

// App is the bubbletea model for the task list. It is the store's
// renderer: each applied mutation rebuilds the list and the summary.
type App struct {
	store   *store.Store
	keys    config.Keymap
	logger  *log.Logger
	list    *components.TaskList
	summary *components.Summary

	mode      mode
	inputs    []textinput.Model
	focus     int
	editReply func(store.EditRequest)

	width    int
	height   int
	quitting bool
}

// NewApp binds a new App to st and paints the initial list.
func NewApp(st *store.Store, keys config.Keymap, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 256
	title.Width = 40

	datetime := textinput.New()
	datetime.Placeholder = models.DatetimeLayout
	datetime.CharLimit = 32
	datetime.Width = 20

	list := components.NewTaskList(0, 0)
	list.EmptyText = fmt.Sprintf("No tasks yet. Press '%s' to add one.", keys.Add)

	a := &App{
		store:   st,
		keys:    keys,
		logger:  logger,
		list:    list,
		summary: components.NewSummary(),
		inputs:  []textinput.Model{title, datetime},
	}

	st.SetRenderer(a)
	st.Refresh()
	return a
}

// Render rebuilds every view from the snapshot.
func (a *App) Render(tasks []models.Task) {
	a.list.Render(tasks)
	a.summary.Render(tasks)
}

// PromptEdit opens the edit form prefilled with the task's values.
func (a *App) PromptEdit(current models.Task, reply func(store.EditRequest)) {
	a.mode = modeEdit
	a.editReply = reply
	a.inputs[fieldTitle].SetValue(current.Title)
	a.inputs[fieldDatetime].SetValue(current.Datetime)
	for i := range a.inputs {
		a.inputs[i].CursorEnd()
	}
	a.focusField(fieldTitle)
	a.list.ShowCursor = false
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.recalculateLayout()
		return a, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		switch a.mode {
		case modeAdd, modeEdit:
			cmd = a.updateForm(msg)
		default:
			cmd = a.updateList(msg)
		}
		// Opening or closing a form changes the footer height.
		if a.height > 0 {
			a.recalculateLayout()
		}
		return a, cmd
	}
	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "ctrl+c", a.keys.Quit:
		a.quitting = true
		return tea.Quit
	case a.keys.Down, "down":
		a.list.MoveCursor(1)
	case a.keys.Up, "up":
		a.list.MoveCursor(-1)
	case a.keys.Add:
		a.openAddForm()
		return textinput.Blink
	case a.keys.Toggle, " ":
		if a.list.Len() > 0 {
			a.store.ToggleComplete(a.list.Cursor())
		}
	case a.keys.Edit:
		if a.list.Len() > 0 && a.store.RequestEdit(a.list.Cursor(), a) {
			return textinput.Blink
		}
	case a.keys.Delete:
		if a.list.Len() > 0 {
			a.store.Remove(a.list.Cursor())
		}
	}
	return nil
}

func (a *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "ctrl+c":
		a.quitting = true
		return tea.Quit
	case a.keys.Cancel:
		a.cancelForm()
		return nil
	case a.keys.NextField, "shift+tab", "up", "down":
		a.focusField((a.focus + 1) % len(a.inputs))
		return nil
	case a.keys.Confirm:
		a.submitForm()
		return nil
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return cmd
}

func (a *App) openAddForm() {
	a.mode = modeAdd
	a.inputs[fieldTitle].SetValue("")
	a.inputs[fieldDatetime].SetValue("")
	a.focusField(fieldTitle)
	a.list.ShowCursor = false
}

func (a *App) submitForm() {
	title := a.inputs[fieldTitle].Value()
	datetime := a.inputs[fieldDatetime].Value()

	switch a.mode {
	case modeAdd:
		// An incomplete form stays open with its contents.
		if !a.store.Add(title, datetime) {
			return
		}
		a.list.SetCursor(a.list.Len() - 1)
	case modeEdit:
		reply := a.editReply
		a.closeForm()
		if reply != nil {
			reply(store.EditRequest{Title: &title, Datetime: &datetime})
		}
		return
	}
	a.closeForm()
}

func (a *App) cancelForm() {
	reply := a.editReply
	a.closeForm()
	if reply != nil {
		reply(store.EditRequest{})
	}
}

func (a *App) closeForm() {
	a.mode = modeList
	a.editReply = nil
	for i := range a.inputs {
		a.inputs[i].Blur()
		a.inputs[i].SetValue("")
	}
	a.list.ShowCursor = true
	a.list.SetCursor(a.list.Cursor())
}

func (a *App) focusField(i int) {
	a.focus = i
	for j := range a.inputs {
		if j == i {
			a.inputs[j].Focus()
		} else {
			a.inputs[j].Blur()
		}
	}
}

func (a *App) recalculateLayout() {
	listHeight := a.height - lipgloss.Height(a.renderHeader()) - lipgloss.Height(a.renderFooter())
	if listHeight < 1 {
		listHeight = 1
	}
	a.list.SetSize(a.width, listHeight)
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	return a.renderHeader() + "\n" + a.list.View() + "\n" + a.renderFooter()
}

func (a *App) renderHeader() string {
	return headerStyle.Render(a.summary.View())
}

func (a *App) renderFooter() string {
	var b strings.Builder
	if a.mode != modeList {
		b.WriteString(a.renderForm())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(a.helpText()))
	return b.String()
}

func (a *App) renderForm() string {
	heading := "New task"
	if a.mode == modeEdit {
		heading = "Edit task"
	}
	body := strings.Join([]string{
		formTitleStyle.Render(heading),
		labelStyle.Render("Title") + a.inputs[fieldTitle].View(),
		labelStyle.Render("Date & time") + a.inputs[fieldDatetime].View(),
	}, "\n")
	return formStyle.Render(body)
}

func (a *App) helpText() string {
	if a.mode != modeList {
		return fmt.Sprintf("%s switch field • %s save • %s cancel",
			a.keys.NextField, a.keys.Confirm, a.keys.Cancel)
	}
	toggle := "toggle"
	if t, ok := a.list.Selected(); ok {
		toggle = view.ToggleLabel(t)
	}
	return fmt.Sprintf("%s/%s move • %s add • %s %s • %s edit • %s delete • %s quit",
		a.keys.Up, a.keys.Down, a.keys.Add, a.keys.Toggle, toggle, a.keys.Edit, a.keys.Delete, a.keys.Quit)
}

// Run starts the TUI on the alternate screen until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, st *store.Store, keys config.Keymap, logger *log.Logger) error {
	app := NewApp(st, keys, logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	logger = app.logger
	logger.Info("tui started")
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	logger.Info("tui stopped", "tasks", st.Len())
	return nil
}
