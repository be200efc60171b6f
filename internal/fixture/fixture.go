// Package fixture persists raw directory responses to well-known files so
// imports can be replayed offline during development and testing. Snapshots
// are keyed by source and record kind and never alter the data flowing
// through the retrieval layer.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
)

// Kind names the record kind a fixture holds.
type Kind string

const (
	// KindUser marks a fixture holding user records.
	KindUser Kind = "user"
	// KindGroup marks a fixture holding group records.
	KindGroup Kind = "group"
)

// Store reads and writes raw response fixtures under a base directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the fixture file path for a source and record kind.
func (s *Store) Path(source string, kind Kind) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s_data.json", source, kind))
}

// Save writes a raw response snapshot, creating the directory when needed.
func (s *Store) Save(source string, kind Kind, raw []byte) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil { //nolint: mnd
		return fmt.Errorf("failed to create fixture directory: %w", err)
	}

	if err := os.WriteFile(s.Path(source, kind), raw, 0o600); err != nil { //nolint: mnd
		return fmt.Errorf("failed to write fixture: %w", err)
	}

	return nil
}

// Load reads a previously saved raw response snapshot.
func (s *Store) Load(source string, kind Kind) ([]byte, error) {
	raw, err := os.ReadFile(s.Path(source, kind))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	return raw, nil
}
