package importer

import (
	"io"

	"checklistpp/internal/markdown"
	"checklistpp/internal/storage"
)

// MarkdownImporter imports GitHub-style task lists, including the files
// produced by this tool's own markdown and cursor exports.
type MarkdownImporter struct{}

// Name returns the importer name.
func (m *MarkdownImporter) Name() string {
	return "markdown"
}

// Import parses the markdown dialect and appends the tasks.
func (m *MarkdownImporter) Import(r io.Reader, store *storage.Storage, checklist string) (*Result, error) {
	tasks, err := m.Preview(r)
	if err != nil {
		return nil, err
	}
	added, err := store.AppendTasks(checklist, tasks)
	if err != nil {
		return nil, err
	}
	return &Result{Imported: added}, nil
}

// Preview returns the tasks that would be imported.
func (m *MarkdownImporter) Preview(r io.Reader) (storage.Checklist, error) {
	return markdown.ParseTasks(r)
}
