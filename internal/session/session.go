// Package session owns the mutable state of one running invocation: the
// active checklist, its cached tasks, the selected view mode, and the single
// undo slot. Both the batch commands and the interactive loop drive a
// Session rather than talking to storage directly.
package session

import (
	"fmt"
	"strings"

	"checklistpp/internal/config"
	"checklistpp/internal/storage"
)

// Session is the working state for one checklist.
type Session struct {
	Store *storage.Storage
	Cfg   *config.Config

	// Name is the active checklist name.
	Name string
	// Tasks is the cached copy of the active checklist, refreshed after
	// every mutation.
	Tasks storage.Checklist
	// ViewMode is config.ViewChecklist or config.ViewKanban.
	ViewMode string

	lastAction *UndoableAction
}

// New opens a session on the named checklist, creating it if missing.
func New(store *storage.Storage, cfg *config.Config, name string) (*Session, error) {
	s := &Session{
		Store:    store,
		Cfg:      cfg,
		Name:     name,
		ViewMode: cfg.DefaultView,
	}
	if s.ViewMode != config.ViewKanban {
		s.ViewMode = config.ViewChecklist
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the active checklist from disk.
func (s *Session) Reload() error {
	tasks, err := s.Store.Load(s.Name)
	if err != nil {
		return err
	}
	s.Tasks = tasks
	return nil
}

// Limits returns the configured column limits.
func (s *Session) Limits() storage.ColumnLimits {
	return storage.ColumnLimits{
		Todo:     s.Cfg.Limits.Todo,
		Progress: s.Cfg.Limits.Progress,
		Done:     s.Cfg.Limits.Done,
	}
}

// ColumnWarnings reports advisory limit overflow messages for the cached
// tasks. Limits never block operations.
func (s *Session) ColumnWarnings() []string {
	return storage.EnforceColumnLimits(s.Tasks, s.Limits())
}

// SwitchChecklist changes the active checklist. The undo slot is cleared;
// undo never crosses checklists.
func (s *Session) SwitchChecklist(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("checklist name is required")
	}
	prev := s.Name
	s.Name = name
	if err := s.Reload(); err != nil {
		s.Name = prev
		return err
	}
	s.lastAction = nil
	return nil
}

// ToggleView flips between the checklist and kanban views.
func (s *Session) ToggleView() string {
	if s.ViewMode == config.ViewKanban {
		s.ViewMode = config.ViewChecklist
	} else {
		s.ViewMode = config.ViewKanban
	}
	return s.ViewMode
}

// Add appends a task. The bool result reports title truncation.
func (s *Session) Add(text string, priority storage.Priority) (*storage.Task, bool, error) {
	task, truncated, err := s.Store.AddTask(s.Name, text, priority)
	if err != nil {
		return nil, false, err
	}
	if err := s.Reload(); err != nil {
		return nil, false, err
	}
	s.record(newAddAction(s.Store, s.Name, len(s.Tasks)-1, task.Text))
	return task, truncated, nil
}

// Mark completes the task at the zero-based index.
func (s *Session) Mark(idx int) (*storage.Task, error) {
	prev, err := s.taskSnapshot(idx)
	if err != nil {
		return nil, err
	}
	task, err := s.Store.MarkTask(s.Name, idx)
	if err != nil {
		return nil, err
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	s.record(newMarkAction(s.Store, s.Name, idx, prev))
	return task, nil
}

// Delete removes the task at the zero-based index.
func (s *Session) Delete(idx int) (*storage.Task, error) {
	removed, err := s.Store.DeleteTask(s.Name, idx)
	if err != nil {
		return nil, err
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	s.record(newDeleteAction(s.Store, s.Name, idx, *removed))
	return removed, nil
}

// Promote moves the task one column forward. moved is false at the last
// column.
func (s *Session) Promote(idx int) (storage.Status, bool, error) {
	prev, err := s.taskSnapshot(idx)
	if err != nil {
		return storage.StatusUnset, false, err
	}
	status, moved, err := s.Store.PromoteTask(s.Name, idx)
	if err != nil {
		return storage.StatusUnset, false, err
	}
	if err := s.Reload(); err != nil {
		return storage.StatusUnset, false, err
	}
	if moved {
		s.record(newMoveAction(s.Store, s.Name, idx, prev, "promoted"))
	}
	return status, moved, nil
}

// Regress moves the task one column back. moved is false at the first
// column.
func (s *Session) Regress(idx int) (storage.Status, bool, error) {
	prev, err := s.taskSnapshot(idx)
	if err != nil {
		return storage.StatusUnset, false, err
	}
	status, moved, err := s.Store.RegressTask(s.Name, idx)
	if err != nil {
		return storage.StatusUnset, false, err
	}
	if err := s.Reload(); err != nil {
		return storage.StatusUnset, false, err
	}
	if moved {
		s.record(newMoveAction(s.Store, s.Name, idx, prev, "regressed"))
	}
	return status, moved, nil
}

// Edit updates title, priority, and progress. Empty or negative values keep
// the current field.
func (s *Session) Edit(idx int, text string, priority storage.Priority, progress int) (*storage.Task, error) {
	prev, err := s.taskSnapshot(idx)
	if err != nil {
		return nil, err
	}
	task, err := s.Store.EditTask(s.Name, idx, text, priority, progress)
	if err != nil {
		return nil, err
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	s.record(newEditAction(s.Store, s.Name, idx, prev))
	return task, nil
}

// StartTimer begins time tracking on a task.
func (s *Session) StartTimer(idx int) (*storage.Task, error) {
	task, err := s.Store.StartTimer(s.Name, idx)
	if err != nil {
		return nil, err
	}
	return task, s.Reload()
}

// StopTimer ends time tracking and returns the elapsed seconds.
func (s *Session) StopTimer(idx int) (float64, error) {
	elapsed, err := s.Store.StopTimer(s.Name, idx)
	if err != nil {
		return 0, err
	}
	return elapsed, s.Reload()
}

// Schedule sets a YYYY-MM-DD due date on a task.
func (s *Session) Schedule(idx int, due string) (*storage.Task, error) {
	prev, err := s.taskSnapshot(idx)
	if err != nil {
		return nil, err
	}
	task, err := s.Store.ScheduleTask(s.Name, idx, due)
	if err != nil {
		return nil, err
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	s.record(newEditAction(s.Store, s.Name, idx, prev))
	return task, nil
}

// Tag appends a tag to a task, skipping duplicates.
func (s *Session) Tag(idx int, tag string) error {
	if err := s.Store.AppendTag(s.Name, idx, tag); err != nil {
		return err
	}
	return s.Reload()
}

// Clear removes every task from the active checklist.
func (s *Session) Clear() error {
	if err := s.Store.ClearChecklist(s.Name); err != nil {
		return err
	}
	s.lastAction = nil
	return s.Reload()
}

func (s *Session) taskSnapshot(idx int) (storage.Task, error) {
	if idx < 0 || idx >= len(s.Tasks) {
		return storage.Task{}, fmt.Errorf("invalid task number %d", idx+1)
	}
	return s.Tasks[idx], nil
}
