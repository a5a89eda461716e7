package view

import (
	"fmt"
	"sort"
	"strings"

	"checklistpp/internal/storage"
)

// Entry pairs a task with its original 1-based number so sorted displays
// keep stable ids that the user can pass back to commands.
type Entry struct {
	Number int
	Task   storage.Task
}

// ListEntries returns the tasks ordered by priority severity (High before
// Medium before Low), each carrying its original 1-based number. Ties keep
// insertion order.
func ListEntries(tasks storage.Checklist) []Entry {
	entries := make([]Entry, len(tasks))
	for i := range tasks {
		entries[i] = Entry{Number: i + 1, Task: tasks[i]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Task.Priority.SortValue() > entries[j].Task.Priority.SortValue()
	})
	return entries
}

// RenderList renders the flat checklist view: tasks sorted by priority with
// their stable numbers, annotations, and any column-limit warnings appended.
func (s *Styles) RenderList(name string, tasks storage.Checklist, warnings []string) string {
	var b strings.Builder
	b.WriteString(s.TitleStyle.Render("Checklist: " + name))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(s.MetaStyle.Render("  (no tasks)"))
		b.WriteString("\n")
	}

	for _, e := range ListEntries(tasks) {
		b.WriteString(s.renderTaskLine(e))
		b.WriteString("\n")
	}

	for _, w := range warnings {
		b.WriteString(s.WarningStyle.Render("warning: " + w))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTaskLine formats one task entry with its checkbox, number, title,
// and trailing annotations.
func (s *Styles) renderTaskLine(e Entry) string {
	t := e.Task

	checkbox := s.CheckboxPending
	textStyle := s.TaskTodoStyle
	if t.Completed {
		checkbox = s.CheckboxDone
		textStyle = s.TaskDoneStyle
	}

	var meta []string
	meta = append(meta, s.PriorityStyle(t.Priority).Render(string(t.Priority.OrDefault())))
	if t.Progress > 0 {
		meta = append(meta, fmt.Sprintf("%d%%", t.Progress))
	}
	if t.TimeSpent > 0 {
		meta = append(meta, fmt.Sprintf("%.2fs", t.TimeSpent))
	}
	if t.TimerRunning() {
		meta = append(meta, "timer")
	}
	if t.DueDate != "" {
		meta = append(meta, "due "+t.DueDate)
	}
	for _, tag := range t.Tags {
		meta = append(meta, "#"+tag)
	}

	line := fmt.Sprintf("%3d. %s %s", e.Number, checkbox, textStyle.Render(t.Text))
	if len(meta) > 0 {
		line += " " + s.MetaStyle.Render("(") + strings.Join(meta, s.MetaStyle.Render(", ")) + s.MetaStyle.Render(")")
	}
	return line
}
