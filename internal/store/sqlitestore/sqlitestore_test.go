package sqlitestore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Makepad-fr/tada/internal/store"
)

var _ store.KV = (*Store)(nil)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "tada.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestGetMissing(t *testing.T) {
	s, _ := openTemp(t)
	_, ok, err := s.Get("todos")
	if err != nil || ok {
		t.Fatalf("Get = %v, %v; want false, nil", ok, err)
	}
}

func TestUpsert(t *testing.T) {
	s, _ := openTemp(t)
	for _, v := range []string{`[]`, `[{"id":1,"title":"x","completed":false}]`} {
		if err := s.Set("todos", []byte(v)); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	b, ok, err := s.Get("todos")
	if err != nil || !ok {
		t.Fatalf("Get: %v, %v", ok, err)
	}
	if string(b) != `[{"id":1,"title":"x","completed":false}]` {
		t.Errorf("Get = %s", b)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}
}

func TestReopenKeepsData(t *testing.T) {
	s, path := openTemp(t)
	if err := s.Set("todos", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	b, ok, err := s2.Get("todos")
	if err != nil || !ok || string(b) != `[]` {
		t.Fatalf("Get after reopen = %s, %v, %v", b, ok, err)
	}
}

func TestInvalidKey(t *testing.T) {
	s, _ := openTemp(t)
	if err := s.Set("", []byte("x")); !errors.Is(err, store.ErrInvalidKey) {
		t.Errorf("err = %v, want ErrInvalidKey", err)
	}
}
