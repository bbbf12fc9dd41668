// Package groups owns the persisted group list: creation, deletion, color
// assignment, and tab membership. Membership is exclusive — a tab ID lives
// in at most one group's member list, enforced by SetMembership being the
// only mutation path for membership.
package groups

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	mathrand "math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lotas/seitenleiste/internal/applog"
	"github.com/lotas/seitenleiste/internal/storage"
	"github.com/lotas/seitenleiste/internal/types"
)

// Palette is the fixed set of colors groups are assigned from.
var Palette = []string{
	"#F97373", // red
	"#FB923C", // orange
	"#FACC15", // yellow
	"#4ADE80", // green
	"#2DD4BF", // teal
	"#38BDF8", // blue
	"#A855F7", // purple
}

var (
	// ErrDuplicateName is returned by Create when another live group already
	// carries the same name, compared case-insensitively.
	ErrDuplicateName = errors.New("a group with this name already exists")

	// ErrEmptyName is returned by Create for empty or whitespace-only names.
	ErrEmptyName = errors.New("group name is empty")
)

// RecordStore is the slice of the persistent store the registry needs.
type RecordStore interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
}

// Registry holds the live group list and keeps it in sync with the store.
// Every mutating operation persists before returning, so the view never
// shows unsaved state.
type Registry struct {
	store RecordStore
	rng   *mathrand.Rand
	list  []*types.Group
}

// NewRegistry creates a registry backed by store. rng drives palette color
// assignment; tests pass a seeded source for deterministic colors.
func NewRegistry(store RecordStore, rng *mathrand.Rand) *Registry {
	return &Registry{store: store, rng: rng}
}

// Load reads the persisted group list. A corrupt record is logged and reset
// to an empty list — never surfaced to the caller. Only store I/O errors
// propagate.
func (r *Registry) Load() error {
	data, err := r.store.Read(storage.KeyGroups)
	if err != nil {
		return err
	}
	if data == nil {
		r.list = nil
		return nil
	}
	var list []*types.Group
	if err := json.Unmarshal(data, &list); err != nil {
		applog.Error("groups.load", err)
		r.list = nil
		return nil
	}
	// A record like [null] unmarshals without error but leaves nil entries
	// behind. Drop them like any other corruption; valid groups survive.
	kept := list[:0]
	for _, g := range list {
		if g != nil {
			kept = append(kept, g)
		}
	}
	if dropped := len(list) - len(kept); dropped > 0 {
		applog.Error("groups.load", fmt.Errorf("dropped %d null group entries", dropped))
	}
	r.list = kept
	return nil
}

// EnsureColors assigns a random palette color to every group that lacks one
// and persists only if something changed. Idempotent: already-colored groups
// are never touched.
func (r *Registry) EnsureColors() error {
	changed := false
	for _, g := range r.list {
		if g.Color == "" {
			g.Color = r.randomColor()
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.persist()
}

// Create adds a group with the given name, an empty member list, and a
// random palette color, then persists. The name must be unique among live
// groups, compared case-insensitively.
func (r *Registry) Create(name string) (*types.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	for _, g := range r.list {
		if strings.EqualFold(g.Name, name) {
			return nil, ErrDuplicateName
		}
	}

	g := &types.Group{
		ID:    newGroupID(),
		Name:  name,
		Color: r.randomColor(),
	}
	r.list = append(r.list, g)
	if err := r.persist(); err != nil {
		return nil, err
	}
	applog.Info("groups.created", "id", g.ID, "name", g.Name, "color", g.Color)
	return g, nil
}

// Delete removes the group. Member tabs are not touched — they simply stop
// being found by lookup and render as ungrouped on the next cycle.
func (r *Registry) Delete(groupID string) error {
	for i, g := range r.list {
		if g.ID == groupID {
			r.list = append(r.list[:i], r.list[i+1:]...)
			if err := r.persist(); err != nil {
				return err
			}
			applog.Info("groups.deleted", "id", groupID, "name", g.Name)
			return nil
		}
	}
	return fmt.Errorf("group %q not found", groupID)
}

// SetMembership moves tabID into the given group, or out of every group when
// groupID is the ungrouped sentinel. The tab is removed from all member
// lists first, then appended to the target, keeping membership exclusive.
func (r *Registry) SetMembership(tabID int, groupID string) error {
	var target *types.Group
	if groupID != types.UngroupedID {
		target = r.Find(groupID)
		if target == nil {
			return fmt.Errorf("group %q not found", groupID)
		}
	}

	for _, g := range r.list {
		for i, id := range g.TabIDs {
			if id == tabID {
				g.TabIDs = append(g.TabIDs[:i], g.TabIDs[i+1:]...)
				break
			}
		}
	}

	if target != nil && !target.HasTab(tabID) {
		target.TabIDs = append(target.TabIDs, tabID)
	}

	return r.persist()
}

// Find returns the group with the given ID, or nil.
func (r *Registry) Find(groupID string) *types.Group {
	for _, g := range r.list {
		if g.ID == groupID {
			return g
		}
	}
	return nil
}

// FindByTab returns the group whose member list contains tabID, or nil.
// Membership exclusivity makes the first match unambiguous.
func (r *Registry) FindByTab(tabID int) *types.Group {
	for _, g := range r.list {
		if g.HasTab(tabID) {
			return g
		}
	}
	return nil
}

// All returns the live groups in stored order.
func (r *Registry) All() []*types.Group {
	return r.list
}

// Options returns the selection-control entries: the ungrouped pseudo-group
// first, then every live group.
func (r *Registry) Options() []types.GroupOption {
	opts := make([]types.GroupOption, 0, len(r.list)+1)
	opts = append(opts, types.GroupOption{ID: types.UngroupedID, Label: "Ungrouped"})
	for _, g := range r.list {
		opts = append(opts, types.GroupOption{ID: g.ID, Label: g.Name})
	}
	return opts
}

func (r *Registry) persist() error {
	list := r.list
	if list == nil {
		list = []*types.Group{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal groups: %w", err)
	}
	return r.store.Write(storage.KeyGroups, data)
}

func (r *Registry) randomColor() string {
	return Palette[r.rng.Intn(len(Palette))]
}

func newGroupID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		// timestamp-only fallback
		return ulid.MustNew(ulid.Timestamp(time.Now()), nil).String()
	}
	return id.String()
}
