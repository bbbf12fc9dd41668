package server

import (
	"encoding/json"
	"fmt"

	"github.com/lotas/seitenleiste/internal/types"
)

type wireTab struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	FavIconURL string `json:"favIconUrl"`
	Active     bool   `json:"active"`
}

// ParseSnapshot converts an IncomingMsg of type "snapshot" into the tab
// list, preserving the extension's window order.
func ParseSnapshot(msg IncomingMsg) ([]types.Tab, error) {
	var wire []wireTab
	if err := json.Unmarshal(msg.Tabs, &wire); err != nil {
		return nil, fmt.Errorf("parse tabs: %w", err)
	}

	tabs := make([]types.Tab, 0, len(wire))
	for _, wt := range wire {
		tabs = append(tabs, types.Tab{
			ID:      wt.ID,
			Title:   wt.Title,
			URL:     wt.URL,
			Favicon: wt.FavIconURL,
			Active:  wt.Active,
		})
	}
	return tabs, nil
}
