package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
)

// NoteEditor edits the free-text note of one tab. Saving empty text deletes
// the note.
type NoteEditor struct {
	TabID    int
	TabTitle string
	Area     textarea.Model
}

func NewNoteEditor(tabID int, tabTitle, current string) NoteEditor {
	ta := textarea.New()
	ta.Placeholder = "note for this tab"
	ta.SetWidth(48)
	ta.SetHeight(6)
	ta.CharLimit = 2000
	ta.SetValue(current)
	ta.Focus()
	return NoteEditor{TabID: tabID, TabTitle: tabTitle, Area: ta}
}

func (m NoteEditor) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	title := truncate(m.TabTitle, 44)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Note: "+title) + "\n\n")
	b.WriteString(m.Area.View() + "\n")
	b.WriteString("\n" + hintStyle.Render("ctrl+s save · esc cancel · empty note deletes"))

	return boxStyle.Render(b.String())
}
