package view

import (
	"testing"

	"github.com/lotas/seitenleiste/internal/types"
)

func TestBuildUngroupedFirst(t *testing.T) {
	snapshot := []types.Tab{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	groups := []*types.Group{
		{ID: "g1", Name: "Work", Color: "#F97373", TabIDs: []int{2}},
	}

	tree := Build(snapshot, groups, nil, "", nil)

	if len(tree.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(tree.Sections))
	}
	if tree.Sections[0].ID != types.UngroupedID {
		t.Errorf("first section is %q, want the ungrouped partition", tree.Sections[0].ID)
	}
	if tree.Sections[1].ID != "g1" || tree.Sections[1].Title != "Work" {
		t.Errorf("second section: got %+v", tree.Sections[1])
	}
	if tree.Stats.TotalTabs != 2 || tree.Stats.VisibleTabs != 2 || tree.Stats.TotalGroups != 1 {
		t.Errorf("stats: got %+v", tree.Stats)
	}
}

func TestBuildRowFields(t *testing.T) {
	snapshot := []types.Tab{
		{ID: 1, Title: "", URL: "https://www.example.com/x", Favicon: "https://example.com/f.ico", Active: true},
	}
	groups := []*types.Group{
		{ID: "g1", Name: "Work", Color: "#38BDF8", TabIDs: []int{1}},
	}
	notes := map[int]string{1: "follow up"}

	tree := Build(snapshot, groups, notes, "", nil)

	rows := tree.Sections[1].Rows
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Title != "(no title)" {
		t.Errorf("title fallback: got %q", row.Title)
	}
	if row.Domain != "example.com" {
		t.Errorf("domain: got %q", row.Domain)
	}
	if !row.HasFavicon || !row.Active {
		t.Errorf("favicon/active flags lost: %+v", row)
	}
	if row.Color != "#38BDF8" || row.GroupID != "g1" {
		t.Errorf("group binding: got color %q group %q", row.Color, row.GroupID)
	}
	if row.Note != "follow up" {
		t.Errorf("note: got %q", row.Note)
	}
}

func TestBuildUngroupedRowsGetNeutralColor(t *testing.T) {
	snapshot := []types.Tab{{ID: 1, Title: "a", URL: "https://example.com"}}

	tree := Build(snapshot, nil, nil, "", nil)

	row := tree.Sections[0].Rows[0]
	if row.Color != types.NeutralColor {
		t.Errorf("color: got %q, want neutral", row.Color)
	}
	if row.GroupID != types.UngroupedID {
		t.Errorf("group: got %q, want ungrouped sentinel", row.GroupID)
	}
}

func TestBuildOptionsStartWithUngrouped(t *testing.T) {
	snapshot := []types.Tab{{ID: 1, Title: "a"}}
	groups := []*types.Group{
		{ID: "g1", Name: "Work"},
		{ID: "g2", Name: "Play"},
	}

	tree := Build(snapshot, groups, nil, "", nil)

	opts := tree.Sections[0].Rows[0].Options
	if len(opts) != 3 {
		t.Fatalf("got %d options, want 3", len(opts))
	}
	if opts[0].ID != types.UngroupedID {
		t.Errorf("first option: got %+v", opts[0])
	}
	if opts[1].Label != "Work" || opts[2].Label != "Play" {
		t.Errorf("options out of order: %+v", opts[1:])
	}
}

func TestBuildCollapsedSectionKeepsCount(t *testing.T) {
	snapshot := []types.Tab{{ID: 1}, {ID: 2}}
	groups := []*types.Group{
		{ID: "g1", Name: "Work", TabIDs: []int{1, 2}},
	}

	tree := Build(snapshot, groups, nil, "", map[string]bool{"g1": true})

	sec := tree.Sections[1]
	if !sec.Collapsed {
		t.Fatal("section not marked collapsed")
	}
	if len(sec.Rows) != 0 {
		t.Errorf("collapsed section emitted %d rows", len(sec.Rows))
	}
	if sec.Count != 2 {
		t.Errorf("count: got %d, want 2", sec.Count)
	}
}

func TestBuildFilterAffectsCounts(t *testing.T) {
	snapshot := []types.Tab{
		{ID: 1, Title: "Go docs"},
		{ID: 2, Title: "Mail"},
	}

	tree := Build(snapshot, nil, nil, "mail", nil)

	if tree.Stats.TotalTabs != 2 {
		t.Errorf("total tabs: got %d, want 2", tree.Stats.TotalTabs)
	}
	if tree.Stats.VisibleTabs != 1 {
		t.Errorf("visible tabs: got %d, want 1", tree.Stats.VisibleTabs)
	}
	if got := tree.Sections[0].Count; got != 1 {
		t.Errorf("ungrouped count: got %d, want 1", got)
	}
}
