// Package filestore keeps each key in its own JSON file under a directory.
// Human-readable and portable. No locking; fine for a local single-user tool.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Makepad-fr/tada/internal/store"
)

const ext = ".json"

type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created on first Set.
func New(dir string) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory holding the data files.
func (s *Store) Dir() string { return s.dir }

// Path returns the file backing key.
func (s *Store) Path(key string) (string, error) {
	if err := store.ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key+ext), nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	p, err := s.Path(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return b, true, nil
}

// Set writes to a temp file in the same directory and renames it over the
// target, so a crash mid-write leaves the previous value intact.
func (s *Store) Set(key string, value []byte) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := filepath.Join(s.dir, "."+key+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
