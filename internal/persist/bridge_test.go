package persist

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/memstore"
)

func TestHydrateMissingIsEmpty(t *testing.T) {
	b := NewBridge(memstore.New(), WithLogger(logging.Discard()))
	l, err := b.Hydrate()
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if l == nil || len(l) != 0 {
		t.Errorf("Hydrate = %#v, want empty list", l)
	}
}

func TestHydrateStored(t *testing.T) {
	kv := memstore.New()
	kv.Seed(DefaultKey, []byte(`[{"id":5,"title":"old","completed":true}]`))
	l, err := NewBridge(kv, WithLogger(logging.Discard())).Hydrate()
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if !l.Equal(model.List{{ID: 5, Title: "old", Completed: true}}) {
		t.Errorf("Hydrate = %+v", l)
	}
}

func TestHydrateCustomKey(t *testing.T) {
	kv := memstore.New()
	kv.Seed("work", []byte(`[{"id":1,"title":"w","completed":false}]`))
	kv.Seed(DefaultKey, []byte(`[]`))
	l, err := NewBridge(kv, WithKey("work"), WithLogger(logging.Discard())).Hydrate()
	if err != nil || len(l) != 1 {
		t.Fatalf("Hydrate = %+v, %v", l, err)
	}
}

func TestHydrateMalformedFails(t *testing.T) {
	kv := memstore.New()
	kv.Seed(DefaultKey, []byte(`not json`))
	_, err := NewBridge(kv, WithLogger(logging.Discard())).Hydrate()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
	if kv.Writes != 0 {
		t.Errorf("Hydrate wrote %d times", kv.Writes)
	}
}

func TestHydrateMalformedReset(t *testing.T) {
	kv := memstore.New()
	kv.Seed(DefaultKey, []byte(`[{"id":1}]`))
	var logs bytes.Buffer
	b := NewBridge(kv, WithOnCorrupt(Reset), WithLogger(logging.New(&logs, false)))

	l, err := b.Hydrate()
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if len(l) != 0 {
		t.Errorf("Hydrate = %+v, want empty", l)
	}
	backup, ok, _ := kv.Get(DefaultKey + ".corrupt")
	if !ok || string(backup) != `[{"id":1}]` {
		t.Errorf("backup = %s, %v", backup, ok)
	}
	if !strings.Contains(logs.String(), "malformed") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
}

func TestHydrateResetBackupFailure(t *testing.T) {
	kv := memstore.New()
	kv.Seed(DefaultKey, []byte(`{`))
	kv.FailWith = errors.New("read-only")
	_, err := NewBridge(kv, WithOnCorrupt(Reset), WithLogger(logging.Discard())).Hydrate()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestPersistOverwrites(t *testing.T) {
	kv := memstore.New()
	b := NewBridge(kv, WithLogger(logging.Discard()))

	if err := b.Persist(model.List{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}); err != nil {
		t.Fatal(err)
	}
	if err := b.Committed(model.List{{ID: 2, Title: "b"}}); err != nil {
		t.Fatal(err)
	}
	got, err := b.Hydrate()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(model.List{{ID: 2, Title: "b"}}) {
		t.Errorf("stored = %+v", got)
	}
	if kv.Writes != 2 {
		t.Errorf("Writes = %d, want 2", kv.Writes)
	}
}

func TestPersistSurfacesWriteError(t *testing.T) {
	kv := memstore.New()
	boom := errors.New("disk full")
	kv.FailWith = boom
	err := NewBridge(kv, WithLogger(logging.Discard())).Persist(model.List{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if kv.Writes != 1 {
		t.Errorf("Writes = %d, want exactly one attempt", kv.Writes)
	}
}
