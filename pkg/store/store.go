// Package store is a small file-backed JSON document store. Each key maps to
// one pretty-printed JSON file under the data directory; whole-document
// overwrite via rename is the only consistency mechanism, which is enough for
// documents this size.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store persists JSON documents keyed by simple identifiers.
type Store struct {
	dir string
	log *slog.Logger
}

// New creates a Store rooted at dir, creating it if needed.
func New(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Load reads the document for key into v. A missing or corrupt document is
// never fatal: v is left at its caller-supplied default and Load returns
// false. Corrupt documents are logged.
func (s *Store) Load(key string, v any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn("store: corrupt document, using default", "key", key, "error", err)
		return false
	}
	return true
}

// Save writes v as the document for key. The write goes to a temp file in the
// same directory followed by a rename, so readers never observe a partial
// document.
func (s *Store) Save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
