package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"checklistpp/internal/storage"
)

// ChecklistImporter imports tasks from an external checklist JSON file (a
// JSON array of task records, the same schema this tool persists).
type ChecklistImporter struct{}

// Name returns the importer name.
func (c *ChecklistImporter) Name() string {
	return "checklist"
}

// Import parses the JSON array and appends its tasks. Records with an empty
// title are skipped and reported per item rather than failing the import.
func (c *ChecklistImporter) Import(r io.Reader, store *storage.Storage, checklist string) (*Result, error) {
	tasks, err := c.Preview(r)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	valid := make(storage.Checklist, 0, len(tasks))
	for i := range tasks {
		if strings.TrimSpace(tasks[i].Text) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: task text is required", i+1))
			continue
		}
		valid = append(valid, tasks[i])
	}

	added, err := store.AppendTasks(checklist, valid)
	if err != nil {
		return nil, err
	}
	result.Imported = added
	return result, nil
}

// Preview decodes the JSON array without importing. Invalid status or
// priority values fail the whole decode; there is no partial recovery.
func (c *ChecklistImporter) Preview(r io.Reader) (storage.Checklist, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read checklist file: %w", err)
	}
	var tasks storage.Checklist
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse checklist file: %w", err)
	}
	return tasks, nil
}
