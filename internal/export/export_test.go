package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lotas/seitenleiste/internal/types"
)

func testData() ([]types.Tab, []*types.Group, map[int]string) {
	snapshot := []types.Tab{
		{ID: 1, Title: "Go docs", URL: "https://go.dev/doc"},
		{ID: 2, Title: "Mail", URL: "https://mail.example.com"},
		{ID: 3, Title: "", URL: "https://blank.example.com"},
	}
	groups := []*types.Group{
		{ID: "g1", Name: "Work", Color: "#38BDF8", TabIDs: []int{1}},
	}
	notes := map[int]string{1: "reread the rfc"}
	return snapshot, groups, notes
}

func TestMarkdown(t *testing.T) {
	snapshot, groups, notes := testData()

	out := Markdown(snapshot, groups, notes)

	if !strings.Contains(out, "## Ungrouped (2 tabs)") {
		t.Errorf("missing ungrouped section:\n%s", out)
	}
	if !strings.Contains(out, "## Work (1 tab)") {
		t.Errorf("missing group section:\n%s", out)
	}
	if !strings.Contains(out, "[Go docs](https://go.dev/doc)") {
		t.Errorf("missing tab link:\n%s", out)
	}
	if !strings.Contains(out, "> reread the rfc") {
		t.Errorf("missing note blockquote:\n%s", out)
	}
	// Empty titles fall back to the URL.
	if !strings.Contains(out, "[https://blank.example.com](https://blank.example.com)") {
		t.Errorf("missing title fallback:\n%s", out)
	}
	// Ungrouped comes before groups.
	if strings.Index(out, "## Ungrouped") > strings.Index(out, "## Work") {
		t.Error("ungrouped section not first")
	}
}

func TestJSON(t *testing.T) {
	snapshot, groups, notes := testData()

	out, err := JSON(snapshot, groups, notes)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var parsed struct {
		Ungrouped []struct {
			Title  string `json:"title"`
			Domain string `json:"domain"`
		} `json:"ungrouped"`
		Groups []struct {
			Name string `json:"name"`
			Tabs []struct {
				URL  string `json:"url"`
				Note string `json:"note"`
			} `json:"tabs"`
		} `json:"groups"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(parsed.Ungrouped) != 2 {
		t.Errorf("got %d ungrouped tabs, want 2", len(parsed.Ungrouped))
	}
	if parsed.Ungrouped[0].Domain != "mail.example.com" {
		t.Errorf("domain: got %q", parsed.Ungrouped[0].Domain)
	}
	if len(parsed.Groups) != 1 || parsed.Groups[0].Name != "Work" {
		t.Fatalf("groups: got %+v", parsed.Groups)
	}
	if parsed.Groups[0].Tabs[0].Note != "reread the rfc" {
		t.Errorf("note: got %q", parsed.Groups[0].Tabs[0].Note)
	}
}
