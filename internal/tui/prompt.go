package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// NamePrompt asks for a new group name. A rejected name (duplicate, empty)
// keeps the prompt open with the error shown inline.
type NamePrompt struct {
	Input textinput.Model
	Err   string
}

func NewNamePrompt() NamePrompt {
	ti := textinput.New()
	ti.Placeholder = "group name"
	ti.CharLimit = 60
	ti.Width = 30
	ti.Focus()
	return NamePrompt{Input: ti}
}

func (m NamePrompt) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	var b strings.Builder
	b.WriteString(titleStyle.Render("New group") + "\n\n")
	b.WriteString(m.Input.View() + "\n")
	if m.Err != "" {
		b.WriteString(errStyle.Render(m.Err) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("enter create · esc cancel"))

	return boxStyle.Render(b.String())
}

// DeleteConfirm asks before a group is deleted. Deleting releases the
// member tabs to the ungrouped partition; it never closes them.
type DeleteConfirm struct {
	GroupID   string
	GroupName string
}

func (m DeleteConfirm) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(1, 2)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Delete group %q?", m.GroupName)) + "\n\n")
	b.WriteString("Tabs stay open and move to Ungrouped.\n")
	b.WriteString("\n" + hintStyle.Render("y delete · esc cancel"))

	return boxStyle.Render(b.String())
}
