// Package markdown implements the lossy export/import bridge between
// checklists and a checkbox-list markdown dialect.
package markdown

import (
	"fmt"
	"strings"
	"time"

	"checklistpp/internal/storage"
)

// Priority emoji markers used by the cursor format. Import recognizes the
// same three markers.
const (
	markerHigh   = "🔴"
	markerMedium = "🟡"
	markerLow    = "🟢"
)

func priorityMarker(p storage.Priority) string {
	switch p.OrDefault() {
	case storage.PriorityHigh:
		return markerHigh
	case storage.PriorityLow:
		return markerLow
	default:
		return markerMedium
	}
}

// Export serializes a checklist into a markdown document grouped by kanban
// column, with per-task annotations and a trailing metadata block. The
// annotations are human-readable text, not a round-trippable encoding.
func Export(name string, tasks storage.Checklist, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Checklist: %s\n\n", name)
	fmt.Fprintf(&b, "*Generated on %s*\n\n", now.Format("2006-01-02 15:04:05"))

	grouped := map[storage.Status]storage.Checklist{}
	for i := range tasks {
		col := storage.StatusForTask(&tasks[i])
		grouped[col] = append(grouped[col], tasks[i])
	}

	for _, col := range storage.Columns() {
		section := grouped[col]
		if len(section) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", col)
		for _, t := range section {
			checkbox := "- [ ] "
			if t.Completed {
				checkbox = "- [x] "
			}
			fmt.Fprintf(&b, "%s%s (**Priority: %s**, Progress: %d%%, Time: %.2fs)\n",
				checkbox, t.Text, t.Priority.OrDefault(), t.Progress, t.TimeSpent)
		}
		b.WriteString("\n")
	}

	completed := 0
	for i := range tasks {
		if tasks[i].Completed {
			completed++
		}
	}

	b.WriteString("## Metadata\n\n")
	b.WriteString("```yaml\n")
	fmt.Fprintf(&b, "checklist_name: %s\n", name)
	fmt.Fprintf(&b, "date_exported: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "total_tasks: %d\n", len(tasks))
	fmt.Fprintf(&b, "completed_tasks: %d\n", completed)
	b.WriteString("```\n")

	return b.String()
}

// ExportCursor serializes a checklist into the flat cursor-tasks format:
// one checkbox line per task with an emoji priority marker, an optional
// due:<date> token, and an #in-progress tag for in-flight tasks. Priority
// survives a re-import through the emoji convention.
func ExportCursor(tasks storage.Checklist) string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")

	for i := range tasks {
		t := &tasks[i]
		checkbox := "- [ ] "
		if t.Completed {
			checkbox = "- [x] "
		}

		line := checkbox + priorityMarker(t.Priority) + " " + t.Text
		if t.DueDate != "" {
			line += " due:" + t.DueDate
		}
		if storage.StatusForTask(t) == storage.StatusProgress {
			line += " #in-progress"
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
