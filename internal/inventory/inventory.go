// Package inventory wraps the extension bridge as the host's tab inventory:
// a snapshot query and an activate-tab call. It owns no tab state — callers
// replace their snapshot wholesale from each SnapshotEvent.
package inventory

import (
	"fmt"
	"sync/atomic"

	"github.com/lotas/seitenleiste/internal/applog"
	"github.com/lotas/seitenleiste/internal/server"
	"github.com/lotas/seitenleiste/internal/types"
)

// Event is one translated message from the host. Concrete types:
// SnapshotEvent, ActivateResult.
type Event any

// SnapshotEvent carries the full tab list of the current window.
type SnapshotEvent struct {
	Tabs []types.Tab
}

// ActivateResult reports the outcome of an activate-tab call.
type ActivateResult struct {
	TabID int
	OK    bool
	Err   string
}

// Client is the typed tab-inventory client over the WebSocket bridge.
type Client struct {
	srv     *server.Server
	counter atomic.Int64
}

// New creates a client over the given bridge.
func New(srv *server.Server) *Client {
	return &Client{srv: srv}
}

// Connected reports whether the extension is connected.
func (c *Client) Connected() bool {
	return c.srv.Connected()
}

// RequestSnapshot asks the extension for the current window's tab list. The
// snapshot arrives asynchronously as a SnapshotEvent. With no extension
// connected this is a no-op.
func (c *Client) RequestSnapshot() error {
	return c.srv.Send(server.OutgoingMsg{ID: c.nextID(), Action: "query"})
}

// Activate asks the host to focus the given tab. Failure comes back as an
// ActivateResult with OK=false and is logged, never surfaced as an error to
// the user.
func (c *Client) Activate(tabID int) error {
	return c.srv.Send(server.OutgoingMsg{ID: c.nextID(), Action: "activate", TabID: tabID})
}

// Next blocks until the next translatable host message and returns it as a
// typed event. The second return is false once the bridge channel closes.
func (c *Client) Next() (Event, bool) {
	for {
		msg, ok := <-c.srv.Messages()
		if !ok {
			return nil, false
		}
		if ev, ok := translate(msg); ok {
			return ev, true
		}
	}
}

// translate converts one wire message into an event. Unknown or malformed
// messages are logged and skipped — a bad host message degrades the view,
// it never breaks the loop.
func translate(msg server.IncomingMsg) (Event, bool) {
	switch msg.Type {
	case "snapshot":
		tabs, err := server.ParseSnapshot(msg)
		if err != nil {
			applog.Error("inventory.snapshot", err)
			return nil, false
		}
		return SnapshotEvent{Tabs: tabs}, true
	case "activated":
		ok := msg.OK != nil && *msg.OK
		if !ok {
			applog.Error("inventory.activate", fmt.Errorf("%s", msg.Error), "tab", msg.TabID)
		}
		return ActivateResult{TabID: msg.TabID, OK: ok, Err: msg.Error}, true
	default:
		return nil, false
	}
}

func (c *Client) nextID() string {
	return fmt.Sprintf("cmd-%d", c.counter.Add(1))
}
