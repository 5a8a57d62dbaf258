// Package store defines the durable key-value slot the task list is
// written to. Backends live in subpackages.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// KV is a synchronous byte store keyed by string.
type KV interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(key string) (value []byte, ok bool, err error)
	// Set overwrites the value for key.
	Set(key string, value []byte) error
	Close() error
}

// ErrInvalidKey is returned for keys a backend cannot store.
var ErrInvalidKey = errors.New("invalid key")

// ValidateKey rejects empty keys and keys that could escape a directory.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`), key == ".", key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
