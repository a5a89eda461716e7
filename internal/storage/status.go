package storage

import "fmt"

// ColumnLimits holds the advisory per-column task count limits.
type ColumnLimits struct {
	Todo     int
	Progress int
	Done     int
}

// StatusForTask returns the kanban column for a task. An explicit status is
// authoritative; derivation from completed/progress is a one-time fallback
// for records that never had a status recorded.
func StatusForTask(t *Task) Status {
	if t.Status != StatusUnset {
		return t.Status
	}
	if t.Completed {
		return StatusDone
	}
	if t.Progress > 0 {
		return StatusProgress
	}
	return StatusTodo
}

// columnIndex returns the position of s in the ordered column list.
func columnIndex(s Status) int {
	for i, col := range Columns() {
		if col == s {
			return i
		}
	}
	return 0
}

// Promote moves a task one column forward. Promotion to Done also marks the
// task completed. Returns the new status and false when the task was already
// in the last column.
func Promote(t *Task) (Status, bool) {
	cols := Columns()
	idx := columnIndex(StatusForTask(t))
	if idx >= len(cols)-1 {
		return StatusDone, false
	}
	t.Status = cols[idx+1]
	if t.Status == StatusDone {
		t.Completed = true
	}
	return t.Status, true
}

// Regress moves a task one column back. Moving out of Done also clears the
// completed flag. Returns the new status and false when the task was already
// in the first column.
func Regress(t *Task) (Status, bool) {
	cols := Columns()
	prev := StatusForTask(t)
	idx := columnIndex(prev)
	if idx <= 0 {
		return StatusTodo, false
	}
	t.Status = cols[idx-1]
	if prev == StatusDone {
		t.Completed = false
	}
	return t.Status, true
}

// EnforceColumnLimits counts tasks per column and returns one warning per
// column whose count exceeds its configured limit. The warnings are advisory
// only; nothing is ever blocked.
func EnforceColumnLimits(tasks Checklist, limits ColumnLimits) []string {
	counts := map[Status]int{}
	for i := range tasks {
		counts[StatusForTask(&tasks[i])]++
	}

	max := map[Status]int{
		StatusTodo:     limits.Todo,
		StatusProgress: limits.Progress,
		StatusDone:     limits.Done,
	}

	var warnings []string
	for _, col := range Columns() {
		if limit := max[col]; limit > 0 && counts[col] > limit {
			warnings = append(warnings, fmt.Sprintf(
				"%s column has %d tasks, exceeding limit of %d", col, counts[col], limit))
		}
	}
	return warnings
}
