package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"cheatsheet-editor/internal/document"
)

// CurrentVersion is the version stamped on every export.
const CurrentVersion = "2.0"

// ErrInvalidFormat is returned when a payload matches neither the current
// nor the legacy snapshot shape.
var ErrInvalidFormat = errors.New("invalid workspace file format")

// Snapshot is the versioned interchange payload written by Export.
type Snapshot struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Columns   int       `json:"columns"`
	FontSize  int       `json:"fontSize"`
	Content   string    `json:"content"`
}

// snapshotEnvelope accepts both historic shapes on import: the current
// single-content form and the legacy per-column array form. Pointers
// distinguish absent fields from zero values.
type snapshotEnvelope struct {
	Version        string    `json:"version"`
	Columns        *int      `json:"columns"`
	FontSize       *int      `json:"fontSize"`
	Content        *string   `json:"content"`
	ColumnContents *[]string `json:"columnContents"`
}

// Export serializes the document in the current snapshot shape.
func Export(doc document.Document) Snapshot {
	return Snapshot{
		Version:   CurrentVersion,
		Timestamp: time.Now().UTC(),
		Columns:   doc.Columns,
		FontSize:  doc.FontSize,
		Content:   doc.Text,
	}
}

// Import parses a snapshot payload and normalizes it to the in-memory
// model. Legacy multi-column payloads are migrated by joining the non-empty
// columns with a blank line, in column order. Import is pure: on error the
// caller's document is untouched because none is passed in.
func Import(data []byte) (document.Document, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return document.Document{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	switch {
	case env.Version == CurrentVersion && env.Content != nil:
		doc := document.New()
		doc.Text = *env.Content
		applyLayout(&doc, env)
		return doc, nil

	case env.ColumnContents != nil:
		doc := document.New()
		doc.Text = joinColumns(*env.ColumnContents)
		applyLayout(&doc, env)
		return doc, nil

	default:
		return document.Document{}, ErrInvalidFormat
	}
}

func applyLayout(doc *document.Document, env snapshotEnvelope) {
	if env.Columns != nil {
		doc.Columns = *env.Columns
	}
	if env.FontSize != nil {
		doc.FontSize = *env.FontSize
	}
	doc.Clamp()
}

func joinColumns(columns []string) string {
	nonEmpty := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// DefaultFilename returns the dated name the browser generation used for
// workspace downloads.
func DefaultFilename(now time.Time) string {
	return "cheatsheet-workspace-" + now.UTC().Format("2006-01-02") + ".json"
}

// WriteFile exports the document to path as indented JSON.
func WriteFile(path string, doc document.Document) error {
	data, err := json.MarshalIndent(Export(doc), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ReadFile imports a workspace file from disk.
func ReadFile(path string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Document{}, err
	}
	return Import(data)
}
