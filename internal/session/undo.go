package session

import (
	"github.com/mattn/go-runewidth"

	"checklistpp/internal/storage"
)

// UndoableAction reverses one mutation. Only the most recent mutation is
// held; recording a new action replaces the previous one.
type UndoableAction struct {
	Description string
	Undo        func() error
}

// record stores the action as the single undo slot.
func (s *Session) record(action *UndoableAction) {
	s.lastAction = action
}

// CanUndo reports whether an action is available to reverse.
func (s *Session) CanUndo() bool {
	return s.lastAction != nil
}

// Undo reverses the most recent mutation and returns its description.
// Returns an empty string when there is nothing to undo. The slot is
// consumed either way; undo does not undo itself.
func (s *Session) Undo() (string, error) {
	action := s.lastAction
	s.lastAction = nil
	if action == nil {
		return "", nil
	}
	if err := action.Undo(); err != nil {
		return "", err
	}
	if err := s.Reload(); err != nil {
		return "", err
	}
	return action.Description, nil
}

func newAddAction(store *storage.Storage, name string, idx int, text string) *UndoableAction {
	return &UndoableAction{
		Description: "added " + truncateText(text, 24),
		Undo: func() error {
			_, err := store.DeleteTask(name, idx)
			return err
		},
	}
}

func newDeleteAction(store *storage.Storage, name string, idx int, task storage.Task) *UndoableAction {
	return &UndoableAction{
		Description: "deleted " + truncateText(task.Text, 24),
		Undo: func() error {
			return store.InsertTask(name, idx, task)
		},
	}
}

// newMarkAction restores the pre-mark completed flag without touching the
// status column, so undoing a mark can leave completed and status apart.
func newMarkAction(store *storage.Storage, name string, idx int, prev storage.Task) *UndoableAction {
	return &UndoableAction{
		Description: "marked " + truncateText(prev.Text, 24),
		Undo: func() error {
			_, err := store.SetCompleted(name, idx, prev.Completed)
			return err
		},
	}
}

func newMoveAction(store *storage.Storage, name string, idx int, prev storage.Task, verb string) *UndoableAction {
	return &UndoableAction{
		Description: verb + " " + truncateText(prev.Text, 24),
		Undo: func() error {
			return store.ReplaceTask(name, idx, prev)
		},
	}
}

func newEditAction(store *storage.Storage, name string, idx int, prev storage.Task) *UndoableAction {
	return &UndoableAction{
		Description: "edited " + truncateText(prev.Text, 24),
		Undo: func() error {
			return store.ReplaceTask(name, idx, prev)
		},
	}
}

func truncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxLen, "..")
}
