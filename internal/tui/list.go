package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lotas/seitenleiste/internal/view"
)

// Node represents a visible row in the section list.
type Node struct {
	Section *view.Section // non-nil for section headers
	Row     *view.Row     // non-nil for tab rows
	Owner   string        // owning section ID, set for tab rows
}

// ListModel paints the accordion of group sections and tab rows and tracks
// the cursor. Collapse state lives in the app model, because the view tree
// is rebuilt from it.
type ListModel struct {
	Tree   view.Tree
	Cursor int
	Offset int // scroll offset
	Width  int
	Height int
}

// SetTree replaces the rendered tree and clamps the cursor to the new node
// count.
func (m *ListModel) SetTree(tree view.Tree) {
	m.Tree = tree
	nodes := m.Nodes()
	if m.Cursor >= len(nodes) {
		m.Cursor = len(nodes) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Offset > m.Cursor {
		m.Offset = m.Cursor
	}
}

// Nodes returns the flat list of currently visible nodes.
func (m ListModel) Nodes() []Node {
	var nodes []Node
	for i := range m.Tree.Sections {
		sec := &m.Tree.Sections[i]
		nodes = append(nodes, Node{Section: sec})
		for j := range sec.Rows {
			nodes = append(nodes, Node{Row: &sec.Rows[j], Owner: sec.ID})
		}
	}
	return nodes
}

// SelectedNode returns the node under the cursor, or nil.
func (m ListModel) SelectedNode() *Node {
	nodes := m.Nodes()
	if m.Cursor >= 0 && m.Cursor < len(nodes) {
		return &nodes[m.Cursor]
	}
	return nil
}

// MoveUp moves the cursor up.
func (m *ListModel) MoveUp() {
	if m.Cursor > 0 {
		m.Cursor--
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
}

// MoveDown moves the cursor down.
func (m *ListModel) MoveDown() {
	nodes := m.Nodes()
	if m.Cursor < len(nodes)-1 {
		m.Cursor++
	}
	visibleRows := m.Height
	if visibleRows < 1 {
		visibleRows = 1
	}
	if m.Cursor >= m.Offset+visibleRows {
		m.Offset = m.Cursor - visibleRows + 1
	}
}

// View renders the list.
func (m ListModel) View() string {
	nodes := m.Nodes()
	if len(nodes) == 0 {
		return "No tabs."
	}

	visibleRows := m.Height
	if visibleRows < 1 {
		visibleRows = 20
	}

	end := m.Offset + visibleRows
	if end > len(nodes) {
		end = len(nodes)
	}

	cursorStyle := lipgloss.NewStyle().Bold(true).Reverse(true)
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	domainStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder
	for i := m.Offset; i < end; i++ {
		node := nodes[i]
		var line string

		if node.Section != nil {
			sec := node.Section
			icon := "▼"
			if sec.Collapsed {
				icon = "▶"
			}
			label := fmt.Sprintf("%s %s (%d)", icon, sec.Title, sec.Count)
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(sec.Color)).Render(label)
		} else if node.Row != nil {
			row := node.Row
			marker := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render("▎")
			prefix := "  "
			if row.Active {
				prefix = "» "
			}
			title := row.Title
			suffix := ""
			if row.Note != "" {
				suffix = " " + noteStyle.Render("✎")
			}
			domain := ""
			if row.Domain != "" {
				domain = "  " + domainStyle.Render(row.Domain)
			}

			// Truncate the title so the line fits the pane.
			maxTitle := m.Width - lipgloss.Width(prefix) - lipgloss.Width(domain) - 6
			if maxTitle < 10 {
				maxTitle = 10
			}
			title = truncate(title, maxTitle)
			line = marker + prefix + title + domain + suffix
		}

		if i == m.Cursor {
			for lipgloss.Width(line) < m.Width {
				line += " "
			}
			line = cursorStyle.Render(line)
		}

		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// truncate cuts s to at most max display runes, ending with an ellipsis.
// Slices on runes so multibyte titles never get cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 1 {
		return ""
	}
	return string(runes[:max-1]) + "…"
}
