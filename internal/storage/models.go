package storage

import (
	"encoding/json"
	"fmt"
)

// Priority represents task priority levels. The empty value means the task
// was stored without a priority; it is treated as Medium everywhere a
// priority is consumed.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	PriorityNone   Priority = "" // absent in older checklist files
)

// Valid reports whether p is one of the closed priority set (or unset).
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	}
	return false
}

// OrDefault resolves an unset priority to Medium.
func (p Priority) OrDefault() Priority {
	if p == PriorityNone {
		return PriorityMedium
	}
	return p
}

// SortValue maps priorities to a severity rank (high first).
func (p Priority) SortValue() int {
	switch p.OrDefault() {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// UnmarshalJSON rejects values outside the closed set, so a corrupted
// checklist file fails the load instead of silently falling through string
// comparisons later.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := Priority(s)
	if !v.Valid() {
		return fmt.Errorf("invalid priority %q: must be High, Medium, or Low", s)
	}
	*p = v
	return nil
}

// Status is a kanban column. The zero value means no explicit status has
// been recorded; the column is then derived from completed/progress.
type Status string

const (
	StatusTodo     Status = "Todo"
	StatusProgress Status = "Progress"
	StatusDone     Status = "Done"
	StatusUnset    Status = ""
)

// Columns returns the kanban columns in workflow order.
func Columns() []Status {
	return []Status{StatusTodo, StatusProgress, StatusDone}
}

// Valid reports whether s is one of the closed status set (or unset).
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusProgress, StatusDone, StatusUnset:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the closed set.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Status(raw)
	if !v.Valid() {
		return fmt.Errorf("invalid status %q: must be Todo, Progress, or Done", raw)
	}
	*s = v
	return nil
}

// Task represents a single checklist item. Field names are fixed by the
// on-disk JSON format and shared with the markdown bridge.
type Task struct {
	Text      string   `json:"task"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority,omitempty"`
	Progress  int      `json:"progress"`
	TimeSpent float64  `json:"time_spent"`
	StartTime float64  `json:"start_time"`
	Status    Status   `json:"status,omitempty"`
	DueDate   string   `json:"due_date,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// TimerRunning reports whether the task's timer is currently running.
func (t *Task) TimerRunning() bool {
	return t.StartTime > 0
}

// Checklist is an ordered sequence of tasks backed by one JSON file.
type Checklist []Task
