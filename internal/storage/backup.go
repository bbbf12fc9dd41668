package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pierrec/lz4/v4"
)

// Archive is the on-disk backup format: both persisted records wrapped in a
// single JSON document, lz4-compressed.
type Archive struct {
	CreatedAt time.Time       `json:"created_at"`
	Groups    json.RawMessage `json:"groups"`
	Notes     json.RawMessage `json:"notes"`
}

// Backup writes an lz4-compressed archive of the groups and notes records.
// Absent records are written as empty documents so restore always produces
// a complete state.
func (s *Store) Backup(w io.Writer) error {
	groups, err := s.Read(KeyGroups)
	if err != nil {
		return err
	}
	if groups == nil {
		groups = []byte("[]")
	}
	notes, err := s.Read(KeyNotes)
	if err != nil {
		return err
	}
	if notes == nil {
		notes = []byte("{}")
	}

	arch := Archive{
		CreatedAt: time.Now().UTC(),
		Groups:    groups,
		Notes:     notes,
	}
	data, err := json.Marshal(arch)
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}

	zw := lz4.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compress archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush archive: %w", err)
	}
	return nil
}

// Restore reads an archive produced by Backup and rewrites both records.
// The archive is validated in full before anything is written, and both
// writes happen in one transaction so a failure leaves the store untouched.
func (s *Store) Restore(r io.Reader) error {
	data, err := io.ReadAll(lz4.NewReader(r))
	if err != nil {
		return fmt.Errorf("decompress archive: %w", err)
	}

	var arch Archive
	if err := json.Unmarshal(data, &arch); err != nil {
		return fmt.Errorf("parse archive: %w", err)
	}
	if len(arch.Groups) == 0 || len(arch.Notes) == 0 {
		return fmt.Errorf("archive is missing records")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range []struct {
		key   string
		value []byte
	}{
		{KeyGroups, arch.Groups},
		{KeyNotes, arch.Notes},
	} {
		if _, err := tx.Exec(upsertRecordSQL, rec.key, string(rec.value)); err != nil {
			return fmt.Errorf("write record %q: %w", rec.key, err)
		}
	}
	return tx.Commit()
}
