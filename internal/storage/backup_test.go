package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pierrec/lz4/v4"
)

func TestBackupRestoreRoundTrip(t *testing.T) {
	src := testStore(t)

	groups := `[{"id":"g1","name":"Work","tabIds":[1,2],"color":"#F97373"}]`
	notes := `{"1":"follow up"}`
	if err := src.Write(KeyGroups, []byte(groups)); err != nil {
		t.Fatalf("Write groups: %v", err)
	}
	if err := src.Write(KeyNotes, []byte(notes)); err != nil {
		t.Fatalf("Write notes: %v", err)
	}

	var buf bytes.Buffer
	if err := src.Backup(&buf); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	dst := testStore(t)
	if err := dst.Restore(&buf); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	gotGroups, err := dst.Read(KeyGroups)
	if err != nil {
		t.Fatalf("Read groups: %v", err)
	}
	if string(gotGroups) != groups {
		t.Errorf("groups: got %q, want %q", gotGroups, groups)
	}
	gotNotes, err := dst.Read(KeyNotes)
	if err != nil {
		t.Fatalf("Read notes: %v", err)
	}
	if string(gotNotes) != notes {
		t.Errorf("notes: got %q, want %q", gotNotes, notes)
	}
}

func TestBackupEmptyStore(t *testing.T) {
	src := testStore(t)

	var buf bytes.Buffer
	if err := src.Backup(&buf); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	dst := testStore(t)
	if err := dst.Restore(&buf); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	groups, _ := dst.Read(KeyGroups)
	if string(groups) != "[]" {
		t.Errorf("groups: got %q, want empty list", groups)
	}
	notes, _ := dst.Read(KeyNotes)
	if string(notes) != "{}" {
		t.Errorf("notes: got %q, want empty object", notes)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	dst := testStore(t)

	err := dst.Restore(strings.NewReader("not an archive"))
	if err == nil {
		t.Fatal("expected error for garbage input")
	}

	// Nothing must have been written.
	groups, _ := dst.Read(KeyGroups)
	if groups != nil {
		t.Errorf("restore wrote %q despite failing", groups)
	}
}

func TestRestoreFailureLeavesStoreUntouched(t *testing.T) {
	dst := testStore(t)
	groups := `[{"id":"g1","name":"Work","tabIds":[1]}]`
	notes := `{"1":"keep me"}`
	if err := dst.Write(KeyGroups, []byte(groups)); err != nil {
		t.Fatalf("Write groups: %v", err)
	}
	if err := dst.Write(KeyNotes, []byte(notes)); err != nil {
		t.Fatalf("Write notes: %v", err)
	}

	// A structurally valid archive that is missing its notes record must
	// be rejected whole, never applied in part.
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write([]byte(`{"created_at":"2026-01-01T00:00:00Z","groups":[{"id":"x","name":"X","tabIds":[]}]}`)); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	if err := dst.Restore(&buf); err == nil {
		t.Fatal("expected error for incomplete archive")
	}

	gotGroups, _ := dst.Read(KeyGroups)
	if string(gotGroups) != groups {
		t.Errorf("groups changed after failed restore: got %q, want %q", gotGroups, groups)
	}
	gotNotes, _ := dst.Read(KeyNotes)
	if string(gotNotes) != notes {
		t.Errorf("notes changed after failed restore: got %q, want %q", gotNotes, notes)
	}
}
