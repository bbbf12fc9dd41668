package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/lotas/seitenleiste/internal/reconcile"
	"github.com/lotas/seitenleiste/internal/types"
)

// Markdown formats the current partition as a markdown document: the
// ungrouped tabs first, then one section per group, with notes attached as
// blockquotes.
func Markdown(snapshot []types.Tab, groups []*types.Group, notes map[int]string) string {
	part := reconcile.Partition(snapshot, groups, "")

	var b strings.Builder
	fmt.Fprintf(&b, "# Browser tabs\n")
	fmt.Fprintf(&b, "> Exported %s\n", time.Now().Format("2006-01-02 15:04"))

	writeSection(&b, "Ungrouped", part.Ungrouped, notes)
	for _, g := range groups {
		writeSection(&b, g.Name, part.ByGroup[g.ID], notes)
	}

	return b.String()
}

func writeSection(b *strings.Builder, name string, tabs []types.Tab, notes map[int]string) {
	n := len(tabs)
	noun := "tabs"
	if n == 1 {
		noun = "tab"
	}
	fmt.Fprintf(b, "\n## %s (%d %s)\n\n", name, n, noun)

	for _, tab := range tabs {
		title := tab.Title
		if title == "" {
			title = tab.URL
		}
		fmt.Fprintf(b, "- [%s](%s)\n", title, tab.URL)
		if note := notes[tab.ID]; note != "" {
			for _, line := range strings.Split(note, "\n") {
				fmt.Fprintf(b, "  > %s\n", line)
			}
		}
	}
}
