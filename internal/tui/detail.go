package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lotas/seitenleiste/internal/view"
)

// DetailModel paints the right-hand pane for the selected node: tab fields,
// the stored note, and the fetched page excerpt when one is available.
type DetailModel struct {
	Width  int
	Height int
}

func (m DetailModel) ViewRow(row *view.Row, groupLabel, excerpt string, loading bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle := lipgloss.NewStyle().Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	excerptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(wrap(row.Title, m.Width-2)) + "\n\n")

	if row.Domain != "" {
		b.WriteString(labelStyle.Render("Domain  ") + row.Domain + "\n")
	}
	b.WriteString(labelStyle.Render("Group   ") + groupLabel + "\n")
	if row.Active {
		b.WriteString(labelStyle.Render("State   ") + "active\n")
	}
	if row.HasFavicon {
		b.WriteString(labelStyle.Render("Favicon ") + "yes\n")
	}

	if row.Note != "" {
		b.WriteString("\n" + labelStyle.Render("Note") + "\n")
		b.WriteString(noteStyle.Render(wrap(row.Note, m.Width-2)) + "\n")
	}

	switch {
	case loading:
		b.WriteString("\n" + labelStyle.Render("Fetching preview...") + "\n")
	case excerpt != "":
		b.WriteString("\n" + labelStyle.Render("Preview") + "\n")
		b.WriteString(excerptStyle.Render(wrap(excerpt, m.Width-2)) + "\n")
	}

	return b.String()
}

func (m DetailModel) ViewSection(sec *view.Section) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(sec.Color))

	var b strings.Builder
	b.WriteString(titleStyle.Render(sec.Title) + "\n\n")
	b.WriteString(labelStyle.Render("Visible ") + fmt.Sprintf("%d tabs", sec.Count) + "\n")
	if sec.Collapsed {
		b.WriteString(labelStyle.Render("State   ") + "collapsed\n")
	}
	return b.String()
}

// wrap is a simple greedy word wrapper for the detail pane.
func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(text) {
		wl := len([]rune(word))
		if line > 0 && line+1+wl > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += wl
	}
	return b.String()
}
