package notes

import (
	"strings"
	"testing"

	"github.com/lotas/seitenleiste/internal/storage"
)

type memStore struct {
	records map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string][]byte)}
}

func (m *memStore) Read(key string) ([]byte, error) {
	return m.records[key], nil
}

func (m *memStore) Write(key string, value []byte) error {
	m.records[key] = value
	return nil
}

func testRegistry(t *testing.T) (*Registry, *memStore) {
	t.Helper()
	store := newMemStore()
	r := NewRegistry(store)
	if err := r.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return r, store
}

func TestSetTrims(t *testing.T) {
	r, _ := testRegistry(t)

	if err := r.Set(1, "  follow up  "); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := r.Get(1); got != "follow up" {
		t.Errorf("Get: got %q, want %q", got, "follow up")
	}
}

func TestSetEmptyDeletes(t *testing.T) {
	r, store := testRegistry(t)

	r.Set(1, "follow up")
	if err := r.Set(1, "   "); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := r.Get(1); got != "" {
		t.Errorf("Get after empty save: got %q, want empty", got)
	}
	if record := string(store.records[storage.KeyNotes]); strings.Contains(record, `"1"`) {
		t.Errorf("persisted record still has key 1: %s", record)
	}
}

func TestGetMissingTab(t *testing.T) {
	r, _ := testRegistry(t)

	if got := r.Get(99); got != "" {
		t.Errorf("Get for unknown tab: got %q, want empty", got)
	}
}

func TestPersistedRoundTrip(t *testing.T) {
	r, store := testRegistry(t)

	r.Set(1, "one")
	r.Set(2, "two")

	r2 := NewRegistry(store)
	if err := r2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := r2.Get(1); got != "one" {
		t.Errorf("Get(1): got %q, want one", got)
	}
	if got := r2.Get(2); got != "two" {
		t.Errorf("Get(2): got %q, want two", got)
	}
}

func TestLoadCorruptRecordResets(t *testing.T) {
	store := newMemStore()
	store.records[storage.KeyNotes] = []byte("[broken")

	r := NewRegistry(store)
	if err := r.Load(); err != nil {
		t.Fatalf("Load must not propagate parse failures, got %v", err)
	}
	if got := r.Get(1); got != "" {
		t.Errorf("expected empty registry after corrupt load, got %q", got)
	}
	if err := r.Set(1, "fresh"); err != nil {
		t.Fatalf("Set after reset: %v", err)
	}
}
