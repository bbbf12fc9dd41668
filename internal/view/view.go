// Package view derives the render tree for one cycle from the snapshot and
// the stored state. Build is a pure function: interaction handling and
// painting live in the tui package, which consumes the tree.
package view

import (
	"github.com/lotas/seitenleiste/internal/reconcile"
	"github.com/lotas/seitenleiste/internal/types"
)

// Tree is the full view description for one render pass: the ungrouped
// section first, then one section per live group in stored order.
type Tree struct {
	Sections []Section
	Stats    types.Stats
}

// Section is one collapsible accordion section.
type Section struct {
	ID        string // group ID, or types.UngroupedID
	Title     string
	Color     string // neutral for the ungrouped section
	Count     int    // visible members after filtering
	Collapsed bool
	Rows      []Row // empty while collapsed; Count stays populated
}

// Row is one visible tab row with everything the painter and the
// interaction layer need.
type Row struct {
	TabID      int
	Title      string // "(no title)" fallback applied
	Domain     string
	HasFavicon bool
	Active     bool
	Color      string // owning group's color, or neutral
	GroupID    string // owning group, or types.UngroupedID
	Note       string
	Options    []types.GroupOption
}

// Build partitions and filters the snapshot against the stored groups and
// assembles the section/row tree. It mutates none of its inputs.
func Build(snapshot []types.Tab, groupList []*types.Group, noteMap map[int]string, filter string, collapsed map[string]bool) Tree {
	part := reconcile.Partition(snapshot, groupList, filter)

	options := make([]types.GroupOption, 0, len(groupList)+1)
	options = append(options, types.GroupOption{ID: types.UngroupedID, Label: "Ungrouped"})
	for _, g := range groupList {
		options = append(options, types.GroupOption{ID: g.ID, Label: g.Name})
	}

	tree := Tree{
		Stats: types.Stats{
			TotalTabs:   len(snapshot),
			TotalGroups: len(groupList),
		},
	}

	ungrouped := Section{
		ID:        types.UngroupedID,
		Title:     "Ungrouped",
		Color:     types.NeutralColor,
		Count:     len(part.Ungrouped),
		Collapsed: collapsed[types.UngroupedID],
	}
	if !ungrouped.Collapsed {
		for _, t := range part.Ungrouped {
			ungrouped.Rows = append(ungrouped.Rows, buildRow(t, types.UngroupedID, types.NeutralColor, noteMap, options))
		}
	}
	tree.Stats.VisibleTabs += ungrouped.Count
	tree.Sections = append(tree.Sections, ungrouped)

	for _, g := range groupList {
		members := part.ByGroup[g.ID]
		sec := Section{
			ID:        g.ID,
			Title:     g.Name,
			Color:     g.Color,
			Count:     len(members),
			Collapsed: collapsed[g.ID],
		}
		if !sec.Collapsed {
			for _, t := range members {
				sec.Rows = append(sec.Rows, buildRow(t, g.ID, g.Color, noteMap, options))
			}
		}
		tree.Stats.VisibleTabs += sec.Count
		tree.Sections = append(tree.Sections, sec)
	}

	return tree
}

func buildRow(t types.Tab, groupID, color string, noteMap map[int]string, options []types.GroupOption) Row {
	title := t.Title
	if title == "" {
		title = "(no title)"
	}
	return Row{
		TabID:      t.ID,
		Title:      title,
		Domain:     reconcile.Domain(t.URL),
		HasFavicon: t.Favicon != "",
		Active:     t.Active,
		Color:      color,
		GroupID:    groupID,
		Note:       noteMap[t.ID],
		Options:    options,
	}
}
