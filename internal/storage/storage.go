// Package storage persists named checklists as JSON files in a data
// directory and implements the kanban status model on top of them.
//
// Every mutating operation loads the named checklist, applies the change in
// memory, and saves the whole file back synchronously. There is no batching
// and no locking; concurrent external modification is undefined behavior.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"checklistpp/internal/fsutil"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	// DefaultTaskNameLimit bounds task titles when no limit is configured.
	DefaultTaskNameLimit = 40
)

// Storage handles all checklist file I/O.
type Storage struct {
	dataDir       string
	taskNameLimit int
	now           func() time.Time // injectable clock for deterministic tests
}

// New creates a Storage rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Storage{
		dataDir:       dataDir,
		taskNameLimit: DefaultTaskNameLimit,
		now:           time.Now,
	}, nil
}

// SetNowFunc overrides the clock used by timer operations. Passing nil
// resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// SetTaskNameLimit sets the maximum task title length. Values < 1 keep the
// current limit.
func (s *Storage) SetTaskNameLimit(n int) {
	if n >= 1 {
		s.taskNameLimit = n
	}
}

// DataDir returns the path to the data directory.
func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("checklist name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid checklist name %q", name)
	}
	return nil
}

// Load reads the named checklist. A missing file yields an empty checklist
// which is immediately persisted, creating the file. Malformed JSON fails
// the whole load; there is no automatic repair.
func (s *Storage) Load(name string) (Checklist, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			empty := Checklist{}
			if err := s.Save(name, empty); err != nil {
				return nil, err
			}
			return empty, nil
		}
		return nil, fmt.Errorf("read checklist %q: %w", name, err)
	}

	var tasks Checklist
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse checklist %q: %w", name, err)
	}
	if tasks == nil {
		tasks = Checklist{}
	}
	return tasks, nil
}

// Save serializes the full checklist, overwriting the file.
func (s *Storage) Save(name string, tasks Checklist) error {
	if err := validName(name); err != nil {
		return err
	}
	if tasks == nil {
		tasks = Checklist{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize checklist %q: %w", name, err)
	}
	if err := fsutil.WriteFileAtomic(s.path(name), data, dataFilePerm); err != nil {
		return fmt.Errorf("write checklist %q: %w", name, err)
	}
	return nil
}

// mutate loads the named checklist, applies fn, and saves the result.
func (s *Storage) mutate(name string, fn func(tasks Checklist) (Checklist, error)) error {
	tasks, err := s.Load(name)
	if err != nil {
		return err
	}
	tasks, err = fn(tasks)
	if err != nil {
		return err
	}
	return s.Save(name, tasks)
}

// taskAt bounds-checks a zero-based index.
func taskAt(tasks Checklist, idx int) (*Task, error) {
	if idx < 0 || idx >= len(tasks) {
		return nil, fmt.Errorf("invalid task number %d", idx+1)
	}
	return &tasks[idx], nil
}

// AddTask appends a new task with explicit Todo status. An empty priority
// defaults to Medium; overlong titles are truncated to the configured limit.
func (s *Storage) AddTask(name, text string, priority Priority) (*Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false, fmt.Errorf("task text is required")
	}
	if !priority.Valid() {
		return nil, false, fmt.Errorf("invalid priority %q: must be High, Medium, or Low", priority)
	}

	truncated := false
	if runes := []rune(text); len(runes) > s.taskNameLimit {
		text = string(runes[:s.taskNameLimit])
		truncated = true
	}

	task := Task{
		Text:     text,
		Priority: priority.OrDefault(),
		Status:   StatusTodo,
	}
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		return nil, false, err
	}
	return &task, truncated, nil
}

// MarkTask marks a task completed and moves it to the Done column.
func (s *Storage) MarkTask(name string, idx int) (*Task, error) {
	var marked Task
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		t.Completed = true
		t.Status = StatusDone
		marked = *t
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return &marked, nil
}

// SetCompleted toggles only the completed flag, leaving any explicit status
// untouched. This is the legacy path used by undo; completed and status can
// diverge through it.
func (s *Storage) SetCompleted(name string, idx int, completed bool) (*Task, error) {
	var changed Task
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		t.Completed = completed
		changed = *t
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return &changed, nil
}

// EditTask updates the title, priority, and progress of a task. Empty text
// or priority keeps the current value; progress < 0 keeps the current value.
func (s *Storage) EditTask(name string, idx int, text string, priority Priority, progress int) (*Task, error) {
	text = strings.TrimSpace(text)
	if !priority.Valid() {
		return nil, fmt.Errorf("invalid priority %q: must be High, Medium, or Low", priority)
	}
	if progress > 100 {
		return nil, fmt.Errorf("progress must be between 0 and 100")
	}

	var edited Task
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		if text != "" {
			if runes := []rune(text); len(runes) > s.taskNameLimit {
				text = string(runes[:s.taskNameLimit])
			}
			t.Text = text
		}
		if priority != PriorityNone {
			t.Priority = priority
		}
		if progress >= 0 {
			t.Progress = progress
		}
		edited = *t
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return &edited, nil
}

// DeleteTask removes a task and returns the removed record.
func (s *Storage) DeleteTask(name string, idx int) (*Task, error) {
	var removed Task
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		removed = *t
		return append(tasks[:idx], tasks[idx+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// InsertTask restores a task at the given index. An index at or past the end
// appends. Used to reverse deletions.
func (s *Storage) InsertTask(name string, idx int, task Task) error {
	return s.mutate(name, func(tasks Checklist) (Checklist, error) {
		if idx < 0 {
			idx = 0
		}
		if idx >= len(tasks) {
			return append(tasks, task), nil
		}
		tasks = append(tasks, Task{})
		copy(tasks[idx+1:], tasks[idx:])
		tasks[idx] = task
		return tasks, nil
	})
}

// ReplaceTask overwrites the task at idx with a full prior snapshot.
func (s *Storage) ReplaceTask(name string, idx int, task Task) error {
	return s.mutate(name, func(tasks Checklist) (Checklist, error) {
		if _, err := taskAt(tasks, idx); err != nil {
			return nil, err
		}
		tasks[idx] = task
		return tasks, nil
	})
}

// PromoteTask moves a task one column forward. The bool result is false when
// the task was already in the last column (a no-op, still reported).
func (s *Storage) PromoteTask(name string, idx int) (Status, bool, error) {
	var status Status
	var moved bool
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		status, moved = Promote(t)
		return tasks, nil
	})
	if err != nil {
		return StatusUnset, false, err
	}
	return status, moved, nil
}

// RegressTask moves a task one column back. The bool result is false when
// the task was already in the first column.
func (s *Storage) RegressTask(name string, idx int) (Status, bool, error) {
	var status Status
	var moved bool
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		status, moved = Regress(t)
		return tasks, nil
	})
	if err != nil {
		return StatusUnset, false, err
	}
	return status, moved, nil
}

// StartTimer starts time tracking for a task. Completed tasks and tasks
// with a running timer are rejected.
func (s *Storage) StartTimer(name string, idx int) (*Task, error) {
	var started Task
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		if t.Completed {
			return nil, fmt.Errorf("task %q is already completed", t.Text)
		}
		if t.TimerRunning() {
			return nil, fmt.Errorf("timer already running for %q", t.Text)
		}
		t.StartTime = float64(s.now().UnixNano()) / float64(time.Second)
		started = *t
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return &started, nil
}

// StopTimer stops time tracking for a task and returns the elapsed seconds
// added to its accumulated time.
func (s *Storage) StopTimer(name string, idx int) (float64, error) {
	var elapsed float64
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		if !t.TimerRunning() {
			return nil, fmt.Errorf("timer not running for %q", t.Text)
		}
		elapsed = float64(s.now().UnixNano())/float64(time.Second) - t.StartTime
		if elapsed < 0 {
			elapsed = 0
		}
		t.TimeSpent += elapsed
		t.StartTime = 0
		return tasks, nil
	})
	if err != nil {
		return 0, err
	}
	return elapsed, nil
}

// ScheduleTask sets a task's due date (YYYY-MM-DD).
func (s *Storage) ScheduleTask(name string, idx int, due string) (*Task, error) {
	if _, err := time.Parse("2006-01-02", due); err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", due)
	}
	var scheduled Task
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		t.DueDate = due
		scheduled = *t
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return &scheduled, nil
}

// AppendTag adds a tag to a task, skipping duplicates.
func (s *Storage) AppendTag(name string, idx int, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fmt.Errorf("tag is required")
	}
	return s.mutate(name, func(tasks Checklist) (Checklist, error) {
		t, err := taskAt(tasks, idx)
		if err != nil {
			return nil, err
		}
		for _, existing := range t.Tags {
			if existing == tag {
				return tasks, nil
			}
		}
		t.Tags = append(t.Tags, tag)
		return tasks, nil
	})
}

// AppendTasks appends pre-built tasks (the import path) and returns the
// number added. Import never replaces or merges by title; duplicates are
// possible and expected on repeated import.
func (s *Storage) AppendTasks(name string, incoming Checklist) (int, error) {
	if len(incoming) == 0 {
		return 0, nil
	}
	err := s.mutate(name, func(tasks Checklist) (Checklist, error) {
		return append(tasks, incoming...), nil
	})
	if err != nil {
		return 0, err
	}
	return len(incoming), nil
}

// ClearChecklist removes every task from the named checklist.
func (s *Storage) ClearChecklist(name string) error {
	return s.mutate(name, func(Checklist) (Checklist, error) {
		return Checklist{}, nil
	})
}

// ListChecklists returns the names of all stored checklists, sorted.
func (s *Storage) ListChecklists() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// DeleteChecklist removes the backing file of the named checklist.
func (s *Storage) DeleteChecklist(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("checklist %q does not exist", name)
		}
		return fmt.Errorf("delete checklist %q: %w", name, err)
	}
	return nil
}

// DeleteAllChecklists removes every stored checklist and returns the count.
func (s *Storage) DeleteAllChecklists() (int, error) {
	names, err := s.ListChecklists()
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		if err := s.DeleteChecklist(name); err != nil {
			return 0, err
		}
	}
	return len(names), nil
}

// SortByPriority returns a copy of tasks ordered by priority severity
// (High > Medium > Low), preserving the original order within a priority.
// The original insertion index of each task is recoverable by identity, so
// callers that show ids must carry them alongside (see view.ListEntries).
func SortByPriority(tasks Checklist) Checklist {
	sorted := make(Checklist, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.SortValue() > sorted[j].Priority.SortValue()
	})
	return sorted
}
