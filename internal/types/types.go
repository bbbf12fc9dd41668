package types

// UngroupedID is the sentinel group identifier for tabs that belong to no
// group. It is never persisted as a real group.
const UngroupedID = "__ungrouped__"

// NeutralColor is the border/tint color for ungrouped tabs.
const NeutralColor = "#6b7280"

// Tab is one live browser tab as reported by the extension. The snapshot is
// ephemeral: it is replaced wholesale on every refresh and never persisted.
type Tab struct {
	ID      int
	Title   string // may be empty
	URL     string // may be unparseable
	Favicon string // empty if the tab has none
	Active  bool   // at most one per snapshot
}

// Group is a user-defined, persisted collection of tab IDs. A tab ID appears
// in at most one group's member list at any time.
type Group struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TabIDs []int  `json:"tabIds"`
	Color  string `json:"color,omitempty"`
}

// HasTab reports whether tabID is in the group's member list.
func (g *Group) HasTab(tabID int) bool {
	for _, id := range g.TabIDs {
		if id == tabID {
			return true
		}
	}
	return false
}

// GroupOption is one entry of the tab-to-group selection control. The first
// option is always the ungrouped pseudo-group.
type GroupOption struct {
	ID    string
	Label string
}

// Stats holds aggregate counts for the status bar.
type Stats struct {
	TotalTabs   int
	VisibleTabs int
	TotalGroups int
}
