// Package selection persists the single authoritative "current wallpaper"
// selection.
package selection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotSelected indicates no wallpaper has ever been selected.
var ErrNotSelected = errors.New("no wallpaper selected")

// Store is a durable single-slot record holding the path of the currently
// selected wallpaper image. Each Set discards the previous value
// irrecoverably; no history is kept.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file. The file holds a single
// line containing the selected path, optionally double-quoted.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Set records path as the current selection. The write is a single atomic
// replace (write-to-temp-then-rename) so a concurrent reader never observes
// a partial path.
func (s *Store) Set(path string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create selection directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".selection-*")
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(path + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write selection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close staging file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace selection file: %w", err)
	}

	return nil
}

// Get returns the current selection. It fails with ErrNotSelected if no
// selection has ever been made. Both quoted and unquoted stored forms are
// tolerated.
func (s *Store) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotSelected
		}
		return "", fmt.Errorf("failed to read selection file: %w", err)
	}

	line := strings.TrimSpace(string(data))
	line = strings.Trim(line, `"`)
	if line == "" {
		return "", ErrNotSelected
	}

	return line, nil
}
