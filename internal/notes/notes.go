// Package notes owns the per-tab free-text annotations. Notes are keyed by
// the host-assigned tab ID and persist independently of group membership;
// they are never purged when a tab closes.
package notes

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lotas/seitenleiste/internal/applog"
	"github.com/lotas/seitenleiste/internal/storage"
)

// RecordStore is the slice of the persistent store the registry needs.
type RecordStore interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
}

// Registry holds the note map and keeps it in sync with the store.
type Registry struct {
	store RecordStore
	notes map[int]string
}

// NewRegistry creates a registry backed by store.
func NewRegistry(store RecordStore) *Registry {
	return &Registry{store: store, notes: make(map[int]string)}
}

// Load reads the persisted note map. A corrupt record is logged and reset to
// an empty map — never surfaced to the caller.
func (r *Registry) Load() error {
	data, err := r.store.Read(storage.KeyNotes)
	if err != nil {
		return err
	}
	r.notes = make(map[int]string)
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, &r.notes); err != nil {
		applog.Error("notes.load", err)
		r.notes = make(map[int]string)
	}
	return nil
}

// Get returns the stored note for tabID, or the empty string.
func (r *Registry) Get(tabID int) string {
	return r.notes[tabID]
}

// Set trims text and stores it for tabID; empty text deletes the entry
// instead, so the record never holds whitespace-only notes. Persists on
// every call.
func (r *Registry) Set(tabID int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		delete(r.notes, tabID)
	} else {
		r.notes[tabID] = text
	}
	return r.persist()
}

// All returns the note map keyed by tab ID. The map is live; callers only
// read it.
func (r *Registry) All() map[int]string {
	return r.notes
}

func (r *Registry) persist() error {
	data, err := json.Marshal(r.notes)
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}
	return r.store.Write(storage.KeyNotes, data)
}
