// Package store holds the in-memory task list and the mutations allowed on it.
package store

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nick-dorsch/todo/pkg/models"
)

// Renderer redraws a view from a full snapshot of the task list.
type Renderer interface {
	Render(tasks []models.Task)
}

// RendererFunc adapts a plain function to a Renderer.
type RendererFunc func(tasks []models.Task)

func (f RendererFunc) Render(tasks []models.Task) {
	f(tasks)
}

// Store owns an ordered task list. Position is the only way to address a
// task; removing one shifts every later task down by one.
//
// Every applied mutation re-renders the bound Renderer with a fresh
// snapshot. Invalid input and out-of-range positions are ignored without
// rendering.
type Store struct {
	mu         sync.Mutex
	tasks      []models.Task
	renderer   Renderer
	rendererMu sync.RWMutex
	logger     *log.Logger
}

// New returns an empty store. A nil logger discards log output.
func New(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		tasks:  make([]models.Task, 0),
		logger: logger,
	}
}

// SetRenderer binds the renderer called after every applied mutation.
func (s *Store) SetRenderer(r Renderer) {
	s.rendererMu.Lock()
	defer s.rendererMu.Unlock()
	s.renderer = r
}

// Refresh renders the current list without changing it.
func (s *Store) Refresh() {
	s.mu.Lock()
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.render(snapshot)
}

// Add appends a new active task. The title is trimmed; an empty title or
// an empty datetime drops the submission.
func (s *Store) Add(title, datetime string) bool {
	title, ok := normalizeTitle(title)
	if !ok || datetime == "" {
		s.logger.Debug("add ignored", "title", title, "datetime", datetime)
		return false
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, models.Task{
		Title:    title,
		Datetime: datetime,
	})
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.logger.Debug("task added", "index", len(snapshot)-1, "title", title)
	s.render(snapshot)
	return true
}

// ToggleComplete flips the completion flag of the task at index.
func (s *Store) ToggleComplete(index int) bool {
	s.mu.Lock()
	if !s.inRange(index) {
		s.mu.Unlock()
		s.logger.Debug("toggle ignored", "index", index)
		return false
	}
	s.tasks[index].Completed = !s.tasks[index].Completed
	completed := s.tasks[index].Completed
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.logger.Debug("task toggled", "index", index, "completed", completed)
	s.render(snapshot)
	return true
}

// Edit replaces the title and/or datetime of the task at index. A nil
// value leaves its field alone, and so does one that is empty after
// trimming: there is no way to blank a field.
func (s *Store) Edit(index int, newTitle, newDatetime *string) bool {
	s.mu.Lock()
	if !s.inRange(index) {
		s.mu.Unlock()
		s.logger.Debug("edit ignored", "index", index)
		return false
	}
	task := &s.tasks[index]
	if title, ok := replacement(newTitle); ok {
		task.Title = title
	}
	if datetime, ok := replacement(newDatetime); ok {
		task.Datetime = datetime
	}
	updated := *task
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.logger.Debug("task edited", "index", index, "title", updated.Title, "datetime", updated.Datetime)
	s.render(snapshot)
	return true
}

// Remove deletes the task at index.
func (s *Store) Remove(index int) bool {
	s.mu.Lock()
	if !s.inRange(index) {
		s.mu.Unlock()
		s.logger.Debug("remove ignored", "index", index)
		return false
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.logger.Debug("task removed", "index", index, "remaining", len(snapshot))
	s.render(snapshot)
	return true
}

// All returns a copy of the task list in display order.
func (s *Store) All() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get returns the task at index.
func (s *Store) Get(index int) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inRange(index) {
		return models.Task{}, false
	}
	return s.tasks[index], true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.tasks)
}

// snapshot must be called with s.mu held.
func (s *Store) snapshot() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) render(tasks []models.Task) {
	s.rendererMu.RLock()
	r := s.renderer
	s.rendererMu.RUnlock()

	if r != nil {
		r.Render(tasks)
	}
}
