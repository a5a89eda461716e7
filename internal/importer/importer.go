// Package importer provides import of tasks into a checklist from external
// files: the markdown checkbox dialect and raw checklist JSON. Imported
// tasks are always appended to the target checklist; nothing is merged or
// replaced, and repeated imports produce duplicates.
package importer

import (
	"io"
	"path/filepath"
	"strings"

	"checklistpp/internal/storage"
)

// Result contains statistics about an import operation.
type Result struct {
	Imported int      // number of appended tasks
	Errors   []string // per-item error messages
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads tasks from the reader and appends them to the named
	// checklist.
	Import(r io.Reader, store *storage.Storage, checklist string) (*Result, error)

	// Preview reads tasks from the reader without importing.
	Preview(r io.Reader) (storage.Checklist, error)

	// Name returns the importer name (e.g. "markdown").
	Name() string
}

// ForPath returns the importer matching the file's extension, or nil when
// the extension is not supported.
func ForPath(path string) Importer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return &MarkdownImporter{}
	case ".json":
		return &ChecklistImporter{}
	default:
		return nil
	}
}

// SupportedExtensions returns the recognized file extensions.
func SupportedExtensions() []string {
	return []string{".md", ".markdown", ".json"}
}
