package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cheatsheet-editor/internal/document"
)

// Stable keys mirrored from the browser generation of the editor.
const (
	KeyContent  = "cheatsheet-content"
	KeyColumns  = "cheatsheet-columns"
	KeyFontSize = "cheatsheet-font-size"
)

const stateFile = "local-state.json"

// Store is the synchronous key/value mirror of the in-memory document. Every
// Set persists before returning so local state stays strictly ordered with
// the edit that caused it.
type Store struct {
	path   string
	values map[string]string
}

// Open loads the mirror from the profile directory, creating it when absent.
func Open(profileDir string) (*Store, error) {
	if err := os.MkdirAll(profileDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating profile dir: %w", err)
	}

	s := &Store{
		path:   filepath.Join(profileDir, stateFile),
		values: make(map[string]string),
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		// A corrupt mirror is not worth failing startup over; start fresh.
		s.values = make(map[string]string)
	}
	return s, nil
}

func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) Set(key, value string) error {
	s.values[key] = value
	return s.persist()
}

// Clear wipes every stored key. Used by the destructive "new workspace" action.
func (s *Store) Clear() error {
	s.values = make(map[string]string)
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// SaveDocument mirrors the whole document in one persisted write.
func (s *Store) SaveDocument(doc document.Document) error {
	s.values[KeyContent] = doc.Text
	s.values[KeyColumns] = strconv.Itoa(doc.Columns)
	s.values[KeyFontSize] = strconv.Itoa(doc.FontSize)
	return s.persist()
}

// LoadDocument rebuilds a document from the mirror. ok is false when no
// content was ever saved.
func (s *Store) LoadDocument() (document.Document, bool) {
	text, ok := s.values[KeyContent]
	if !ok {
		return document.New(), false
	}

	doc := document.New()
	doc.Text = text
	if v, ok := s.values[KeyColumns]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			doc.Columns = n
		}
	}
	if v, ok := s.values[KeyFontSize]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			doc.FontSize = n
		}
	}
	doc.Clamp()
	return doc, true
}
