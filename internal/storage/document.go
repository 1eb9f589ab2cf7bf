// Package storage persists the markdown task document.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DocumentManager defines the interface for reading and writing the task
// document as whole text.
type DocumentManager interface {
	// Load returns the document text and whether the file exists. A
	// missing file yields empty text and no error.
	Load() (string, bool, error)
	// Save replaces the document with text, creating parent directories
	// as needed.
	Save(text string) error
	Path() string
}

type fileDocumentManager struct {
	path string
}

// NewDocumentManager creates a DocumentManager for the markdown file at path.
func NewDocumentManager(path string) DocumentManager {
	return &fileDocumentManager{path: path}
}

func (m *fileDocumentManager) Path() string {
	return m.path
}

func (m *fileDocumentManager) Load() (string, bool, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("loading document: %w", err)
	}
	return string(data), true, nil
}

func (m *fileDocumentManager) Save(text string) error {
	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("saving document: creating directory: %w", err)
		}
	}
	if err := os.WriteFile(m.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("saving document: writing file: %w", err)
	}
	return nil
}
