// Package reconcile derives the partitioned, filtered view of one refresh
// cycle from the ephemeral tab snapshot and the stored group list. It never
// mutates either input: stale member IDs (tab closed since the last fetch)
// are skipped for the cycle, not cleaned up.
package reconcile

import (
	"net/url"
	"strings"

	"github.com/lotas/seitenleiste/internal/types"
)

// Result is the outcome of partitioning one snapshot.
type Result struct {
	// Ungrouped holds tabs owned by no group, in snapshot order.
	Ungrouped []types.Tab
	// ByGroup maps group ID to that group's member tabs that are present in
	// the snapshot and pass the filter, in member-list order.
	ByGroup map[string][]types.Tab
}

// Matches reports whether tab passes the text filter: an empty filter
// matches everything, otherwise a case-insensitive substring match against
// the title or the url.
func Matches(tab types.Tab, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(tab.Title), filter) ||
		strings.Contains(strings.ToLower(tab.URL), filter)
}

// Partition splits the snapshot into the ungrouped list and per-group
// member sublists, applying the text filter to both.
func Partition(snapshot []types.Tab, groups []*types.Group, filter string) Result {
	byID := make(map[int]types.Tab, len(snapshot))
	owned := make(map[int]bool)
	for _, t := range snapshot {
		byID[t.ID] = t
	}
	for _, g := range groups {
		for _, id := range g.TabIDs {
			owned[id] = true
		}
	}

	res := Result{ByGroup: make(map[string][]types.Tab, len(groups))}

	for _, t := range snapshot {
		if !owned[t.ID] && Matches(t, filter) {
			res.Ungrouped = append(res.Ungrouped, t)
		}
	}

	for _, g := range groups {
		var members []types.Tab
		for _, id := range g.TabIDs {
			t, ok := byID[id]
			if !ok {
				continue // tab closed since the snapshot was stored
			}
			if Matches(t, filter) {
				members = append(members, t)
			}
		}
		res.ByGroup[g.ID] = members
	}

	return res
}

// Domain returns the host of rawURL with a leading "www." label stripped.
// Unparseable urls yield the empty string; the result is for filtering and
// display only, never identity.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
