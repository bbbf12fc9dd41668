package tui

import (
	"context"
	mathrand "math/rand"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"github.com/lotas/seitenleiste/internal/groups"
	"github.com/lotas/seitenleiste/internal/inventory"
	"github.com/lotas/seitenleiste/internal/notes"
	"github.com/lotas/seitenleiste/internal/server"
	"github.com/lotas/seitenleiste/internal/types"
)

// memStore is an in-memory RecordStore for tests.
type memStore struct {
	records map[string][]byte
}

func (m *memStore) Read(key string) ([]byte, error) {
	return m.records[key], nil
}

func (m *memStore) Write(key string, value []byte) error {
	m.records[key] = value
	return nil
}

func testModel(t *testing.T, srv *server.Server) Model {
	t.Helper()
	store := &memStore{records: make(map[string][]byte)}
	gr := groups.NewRegistry(store, mathrand.New(mathrand.NewSource(1)))
	if err := gr.Load(); err != nil {
		t.Fatalf("Load groups: %v", err)
	}
	nr := notes.NewRegistry(store)
	if err := nr.Load(); err != nil {
		t.Fatalf("Load notes: %v", err)
	}
	return NewModel(gr, nr, inventory.New(srv), srv, time.Second)
}

func TestTickMarksUnansweredQueryStale(t *testing.T) {
	srv := server.New(0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	deadline := time.Now().Add(time.Second)
	for !srv.Connected() {
		if time.Now().After(deadline) {
			t.Fatal("extension never registered as connected")
		}
		time.Sleep(10 * time.Millisecond)
	}

	m := testModel(t, srv)
	m.snapshot = []types.Tab{{ID: 1, Title: "one"}}
	m.haveSnapshot = true
	m.rebuild()

	// First tick issues the query; nothing is stale yet.
	next, _ := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if m.stale {
		t.Fatal("first tick marked the snapshot stale")
	}

	// The connection stays up but never answers. The next tick must flag
	// the rendered snapshot as stale instead of showing it live-looking.
	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if !m.stale {
		t.Fatal("unanswered query did not mark the snapshot stale")
	}

	// A snapshot finally arriving clears the marker.
	next, _ = m.Update(invEventMsg{event: inventory.SnapshotEvent{Tabs: []types.Tab{{ID: 2, Title: "two"}}}})
	m = next.(Model)
	if m.stale {
		t.Fatal("fresh snapshot did not clear the stale marker")
	}
	if m.pendingQuery {
		t.Fatal("fresh snapshot did not settle the pending query")
	}
}
