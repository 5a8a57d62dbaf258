// Package memstore is an in-memory KV used by tests and --backend memory.
package memstore

import (
	"github.com/Makepad-fr/tada/internal/store"
)

type Store struct {
	data map[string][]byte

	// Writes counts successful and failed Set calls.
	Writes int
	// FailWith, when non-nil, is returned by every Set.
	FailWith error
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Seed sets key without counting a write.
func (s *Store) Seed(key string, value []byte) {
	s.data[key] = append([]byte(nil), value...)
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return nil, false, err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Set(key string, value []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	s.Writes++
	if s.FailWith != nil {
		return s.FailWith
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Close() error { return nil }
