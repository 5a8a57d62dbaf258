// Package persist keeps the task list in a durable key-value slot: read once
// at startup, overwritten in full after every committed transition.
package persist

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// DefaultKey is the slot the list lives under unless configured otherwise.
const DefaultKey = "todos"

// OnCorrupt selects what Hydrate does with a blob that fails validation.
type OnCorrupt string

const (
	// Fail returns the decode error to the caller.
	Fail OnCorrupt = "fail"
	// Reset backs the blob up under <key>.corrupt and starts empty.
	Reset OnCorrupt = "reset"
)

// Bridge moves the task list between memory and a store.KV.
type Bridge struct {
	kv        store.KV
	key       string
	onCorrupt OnCorrupt
	log       *log.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

func WithKey(key string) Option { return func(b *Bridge) { b.key = key } }

func WithOnCorrupt(m OnCorrupt) Option { return func(b *Bridge) { b.onCorrupt = m } }

func WithLogger(l *log.Logger) Option { return func(b *Bridge) { b.log = l } }

func NewBridge(kv store.KV, opts ...Option) *Bridge {
	b := &Bridge{kv: kv, key: DefaultKey, onCorrupt: Fail, log: log.Default()}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Key returns the slot name.
func (b *Bridge) Key() string { return b.key }

// Hydrate loads the stored list. A missing slot is an empty list.
func (b *Bridge) Hydrate() (model.List, error) {
	raw, ok, err := b.kv.Get(b.key)
	if err != nil {
		return nil, fmt.Errorf("hydrate %q: %w", b.key, err)
	}
	if !ok {
		b.log.Debug("no stored list, starting empty", "key", b.key)
		return model.List{}, nil
	}

	l, err := Decode(raw)
	if err == nil {
		b.log.Debug("hydrated", "key", b.key, "tasks", len(l))
		return l, nil
	}
	if b.onCorrupt != Reset {
		return nil, fmt.Errorf("hydrate %q: %w", b.key, err)
	}

	backup := b.key + ".corrupt"
	if berr := b.kv.Set(backup, raw); berr != nil {
		// don't throw away data we could not back up
		return nil, fmt.Errorf("hydrate %q: %w (backup failed: %v)", b.key, err, berr)
	}
	b.log.Warn("stored list is malformed, starting empty", "key", b.key, "backup", backup, "err", err)
	return model.List{}, nil
}

// Persist overwrites the slot with the full list.
func (b *Bridge) Persist(l model.List) error {
	data, err := Encode(l)
	if err != nil {
		return fmt.Errorf("persist %q: %w", b.key, err)
	}
	if err := b.kv.Set(b.key, data); err != nil {
		return fmt.Errorf("persist %q: %w", b.key, err)
	}
	b.log.Debug("persisted", "key", b.key, "tasks", len(l))
	return nil
}

// Committed lets the bridge observe a controller; every commit is written.
func (b *Bridge) Committed(l model.List) error { return b.Persist(l) }
