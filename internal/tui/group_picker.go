package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lotas/seitenleiste/internal/types"
)

// GroupPicker selects the target group for a tab. The first entry is always
// the ungrouped pseudo-group; the cursor starts on the tab's current group.
type GroupPicker struct {
	Options []types.GroupOption
	Counts  map[string]int // visible member count per option, for display
	Cursor  int
	Width   int
	Height  int
}

func NewGroupPicker(options []types.GroupOption, counts map[string]int, current string) GroupPicker {
	cursor := 0
	for i, opt := range options {
		if opt.ID == current {
			cursor = i
			break
		}
	}
	return GroupPicker{Options: options, Counts: counts, Cursor: cursor}
}

func (m *GroupPicker) MoveUp() {
	if m.Cursor > 0 {
		m.Cursor--
	}
}

func (m *GroupPicker) MoveDown() {
	if m.Cursor < len(m.Options)-1 {
		m.Cursor++
	}
}

func (m GroupPicker) Selected() *types.GroupOption {
	if m.Cursor >= 0 && m.Cursor < len(m.Options) {
		return &m.Options[m.Cursor]
	}
	return nil
}

func (m GroupPicker) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	normalStyle := lipgloss.NewStyle().Padding(0, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Move to group:") + "\n\n")

	for i, opt := range m.Options {
		label := fmt.Sprintf("%s (%d tabs)", opt.Label, m.Counts[opt.ID])
		if i == m.Cursor {
			label = selectedStyle.Render(label)
		} else {
			label = normalStyle.Render("  " + label)
		}
		b.WriteString(label + "\n")
	}

	b.WriteString("\n" + normalStyle.Render("↑↓ navigate · enter confirm · esc cancel"))

	return boxStyle.Render(b.String())
}
