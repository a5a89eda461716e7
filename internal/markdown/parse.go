package markdown

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"checklistpp/internal/storage"
)

// sectionProgress is the progress percent inferred for tasks imported from
// each column. It is a heuristic, not the task's true prior progress.
func sectionProgress(col storage.Status) int {
	switch col {
	case storage.StatusDone:
		return 100
	case storage.StatusProgress:
		return 50
	default:
		return 0
	}
}

func sectionFor(header string) (storage.Status, bool) {
	for _, col := range storage.Columns() {
		if header == string(col) {
			return col, true
		}
	}
	return storage.StatusUnset, false
}

// ParseTasks parses the restricted markdown dialect: `## <Column>` headers
// switch the current section, `- [ ]`/`- [x]` lines become tasks. A single
// leading emoji marker sets the priority, a trailing due:<YYYY-MM-DD> token
// sets the due date (silently discarded if invalid), and progress/status are
// derived from the section. Everything else is skipped.
func ParseTasks(r io.Reader) (storage.Checklist, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	section := storage.StatusTodo
	var tasks storage.Checklist

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if after, ok := strings.CutPrefix(line, "## "); ok {
			if col, ok := sectionFor(strings.TrimSpace(after)); ok {
				section = col
			}
			continue
		}

		task, ok := parseTaskLine(line, section)
		if !ok {
			continue
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	return tasks, nil
}

// parseTaskLine parses one checkbox line into a task. Returns false for
// anything that is not a well-formed `- [ ] text` / `- [x] text` line.
func parseTaskLine(line string, section storage.Status) (storage.Task, bool) {
	var completed bool
	var rest string
	switch {
	case strings.HasPrefix(line, "- [ ] "):
		rest = line[len("- [ ] "):]
	case strings.HasPrefix(line, "- [x] "):
		completed = true
		rest = line[len("- [x] "):]
	default:
		return storage.Task{}, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return storage.Task{}, false
	}

	priority := storage.PriorityMedium
	switch fields[0] {
	case markerHigh:
		priority = storage.PriorityHigh
		fields = fields[1:]
	case markerMedium:
		priority = storage.PriorityMedium
		fields = fields[1:]
	case markerLow:
		priority = storage.PriorityLow
		fields = fields[1:]
	}

	var due string
	var textFields []string
	for _, f := range fields {
		if candidate, ok := strings.CutPrefix(f, "due:"); ok {
			if due == "" {
				if _, err := time.Parse("2006-01-02", candidate); err == nil {
					due = candidate
				}
			}
			continue
		}
		textFields = append(textFields, f)
	}

	text := strings.Join(textFields, " ")
	if text == "" {
		return storage.Task{}, false
	}

	return storage.Task{
		Text:      text,
		Completed: completed,
		Priority:  priority,
		Progress:  sectionProgress(section),
		Status:    section,
		DueDate:   due,
	}, true
}
