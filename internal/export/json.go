package export

import (
	"encoding/json"
	"time"

	"github.com/lotas/seitenleiste/internal/reconcile"
	"github.com/lotas/seitenleiste/internal/types"
)

type jsonExport struct {
	ExportedAt time.Time   `json:"exported_at"`
	Ungrouped  []jsonTab   `json:"ungrouped"`
	Groups     []jsonGroup `json:"groups"`
}

type jsonGroup struct {
	Name  string    `json:"name"`
	Color string    `json:"color,omitempty"`
	Tabs  []jsonTab `json:"tabs"`
}

type jsonTab struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Domain string `json:"domain"`
	Note   string `json:"note,omitempty"`
}

// JSON formats the current partition as a JSON document.
func JSON(snapshot []types.Tab, groups []*types.Group, notes map[int]string) (string, error) {
	part := reconcile.Partition(snapshot, groups, "")

	out := jsonExport{
		ExportedAt: time.Now(),
		Ungrouped:  jsonTabs(part.Ungrouped, notes),
		Groups:     make([]jsonGroup, 0, len(groups)),
	}
	for _, g := range groups {
		out.Groups = append(out.Groups, jsonGroup{
			Name:  g.Name,
			Color: g.Color,
			Tabs:  jsonTabs(part.ByGroup[g.ID], notes),
		})
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

func jsonTabs(tabs []types.Tab, notes map[int]string) []jsonTab {
	out := make([]jsonTab, 0, len(tabs))
	for _, tab := range tabs {
		out = append(out, jsonTab{
			Title:  tab.Title,
			URL:    tab.URL,
			Domain: reconcile.Domain(tab.URL),
			Note:   notes[tab.ID],
		})
	}
	return out
}
