package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lotas/seitenleiste/internal/applog"
	"github.com/lotas/seitenleiste/internal/groups"
	"github.com/lotas/seitenleiste/internal/inventory"
	"github.com/lotas/seitenleiste/internal/notes"
	"github.com/lotas/seitenleiste/internal/preview"
	"github.com/lotas/seitenleiste/internal/server"
	"github.com/lotas/seitenleiste/internal/types"
	"github.com/lotas/seitenleiste/internal/view"
)

// --- Messages ---

type tickMsg time.Time

type invEventMsg struct {
	event inventory.Event
}

type invClosedMsg struct{}

type serverStoppedMsg struct {
	err error
}

type previewMsg struct {
	tabID   int
	excerpt string
	err     error
}

// mode is the current input mode. All modes other than modeList are modal
// overlays; the refresh timer keeps running underneath them.
type mode int

const (
	modeList mode = iota
	modeSearch
	modeNamePrompt
	modeConfirmDelete
	modeGroupPicker
	modeNoteEdit
)

// Model is the top-level application state: the single live instance of
// snapshot + registries + view tree, mutated only inside Update.
type Model struct {
	groups *groups.Registry
	notes  *notes.Registry
	client *inventory.Client
	srv    *server.Server

	interval time.Duration

	// Cycle state
	snapshot     []types.Tab
	haveSnapshot bool
	stale        bool // last refresh cycle produced no fresh snapshot
	pendingQuery bool // a query was sent and no snapshot arrived yet
	collapsed    map[string]bool
	tree         view.Tree

	// UI state
	mode    mode
	list    ListModel
	detail  DetailModel
	search  textinput.Model
	picker  GroupPicker
	prompt  NamePrompt
	confirm DeleteConfirm
	editor  NoteEditor
	status  string
	width   int
	height  int

	// Preview state
	previewTabID   int
	previewText    string
	previewLoading bool
}

// NewModel wires the registries and the inventory client into the app.
// Registries must already be loaded (and colors ensured) by the caller.
func NewModel(gr *groups.Registry, nr *notes.Registry, client *inventory.Client, srv *server.Server, interval time.Duration) Model {
	search := textinput.New()
	search.Placeholder = "filter by title or url"
	search.Prompt = "/ "
	search.CharLimit = 120

	m := Model{
		groups:    gr,
		notes:     nr,
		client:    client,
		srv:       srv,
		interval:  interval,
		collapsed: make(map[string]bool),
		search:    search,
	}
	m.rebuild()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		startServer(m.srv),
		listenInventory(m.client),
		requestSnapshot(m.client),
		tick(m.interval),
	)
}

// --- Commands ---

func startServer(srv *server.Server) tea.Cmd {
	return func() tea.Msg {
		err := srv.ListenAndServe(context.Background())
		return serverStoppedMsg{err: err}
	}
}

func listenInventory(c *inventory.Client) tea.Cmd {
	return func() tea.Msg {
		ev, ok := c.Next()
		if !ok {
			return invClosedMsg{}
		}
		return invEventMsg{event: ev}
	}
}

func requestSnapshot(c *inventory.Client) tea.Cmd {
	return func() tea.Msg {
		if err := c.RequestSnapshot(); err != nil {
			applog.Error("tui.query", err)
		}
		return nil
	}
}

func activateTab(c *inventory.Client, tabID int) tea.Cmd {
	return func() tea.Msg {
		if err := c.Activate(tabID); err != nil {
			applog.Error("tui.activate", err, "tab", tabID)
		}
		return nil
	}
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchPreview(tabID int, url string) tea.Cmd {
	return func() tea.Msg {
		_, excerpt, err := preview.Fetch(url)
		return previewMsg{tabID: tabID, excerpt: excerpt, err: err}
	}
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listWidth := m.width * 60 / 100
		paneHeight := m.height - 5 // top bar, search row, bottom bar, borders
		m.list.Width = listWidth - 2
		m.list.Height = paneHeight
		m.detail.Width = m.width - listWidth - 3
		m.detail.Height = paneHeight
		m.search.Width = m.width - 6
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		// The timer re-enters fetching regardless of how the previous cycle
		// went. With no extension connected, or a connected one that never
		// answered the last query, the previous snapshot stays rendered,
		// marked stale.
		if m.client.Connected() {
			if m.pendingQuery {
				m.stale = m.haveSnapshot
			}
			m.pendingQuery = true
			return m, tea.Batch(requestSnapshot(m.client), tick(m.interval))
		}
		m.pendingQuery = false
		m.stale = m.haveSnapshot
		return m, tick(m.interval)

	case invEventMsg:
		switch ev := msg.event.(type) {
		case inventory.SnapshotEvent:
			m.snapshot = ev.Tabs // wholesale replacement, no diffing
			m.haveSnapshot = true
			m.stale = false
			m.pendingQuery = false
			m.rebuild()
		case inventory.ActivateResult:
			if !ev.OK {
				m.status = "couldn't activate tab"
			}
		}
		return m, listenInventory(m.client)

	case invClosedMsg:
		m.stale = m.haveSnapshot
		return m, nil

	case serverStoppedMsg:
		if msg.err != nil {
			applog.Error("tui.server", msg.err)
			m.status = fmt.Sprintf("bridge stopped: %v", msg.err)
		}
		return m, nil

	case previewMsg:
		m.previewLoading = false
		if msg.err != nil {
			m.previewText = fmt.Sprintf("(no preview: %v)", msg.err)
		} else {
			m.previewText = msg.excerpt
		}
		m.previewTabID = msg.tabID
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {

	case modeSearch:
		switch msg.String() {
		case "esc":
			m.search.SetValue("")
			m.search.Blur()
			m.mode = modeList
			m.rebuild()
			return m, nil
		case "enter":
			m.search.Blur()
			m.mode = modeList
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.rebuild()
		return m, cmd

	case modeNamePrompt:
		switch msg.String() {
		case "esc":
			m.mode = modeList
			return m, nil
		case "enter":
			_, err := m.groups.Create(m.prompt.Input.Value())
			switch {
			case errors.Is(err, groups.ErrDuplicateName):
				m.prompt.Err = "a group with this name already exists"
				return m, nil
			case errors.Is(err, groups.ErrEmptyName):
				m.prompt.Err = "name must not be empty"
				return m, nil
			case err != nil:
				applog.Error("tui.create", err)
				m.status = fmt.Sprintf("create failed: %v", err)
			}
			m.mode = modeList
			m.rebuild()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.prompt.Input, cmd = m.prompt.Input.Update(msg)
		m.prompt.Err = ""
		return m, cmd

	case modeConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			if err := m.groups.Delete(m.confirm.GroupID); err != nil {
				applog.Error("tui.delete", err)
				m.status = fmt.Sprintf("delete failed: %v", err)
			}
			delete(m.collapsed, m.confirm.GroupID)
			m.mode = modeList
			m.rebuild()
			return m, nil
		case "esc", "n":
			m.mode = modeList
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case modeGroupPicker:
		switch msg.String() {
		case "up", "k":
			m.picker.MoveUp()
		case "down", "j":
			m.picker.MoveDown()
		case "enter":
			opt := m.picker.Selected()
			node := m.list.SelectedNode()
			if opt != nil && node != nil && node.Row != nil {
				if err := m.groups.SetMembership(node.Row.TabID, opt.ID); err != nil {
					applog.Error("tui.move", err, "tab", node.Row.TabID)
					m.status = fmt.Sprintf("move failed: %v", err)
				}
			}
			m.mode = modeList
			m.rebuild()
		case "esc":
			m.mode = modeList
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case modeNoteEdit:
		switch msg.String() {
		case "esc":
			m.mode = modeList
			return m, nil
		case "ctrl+s":
			if err := m.notes.Set(m.editor.TabID, m.editor.Area.Value()); err != nil {
				applog.Error("tui.note", err, "tab", m.editor.TabID)
				m.status = fmt.Sprintf("note save failed: %v", err)
			}
			m.mode = modeList
			m.rebuild()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.editor.Area, cmd = m.editor.Area.Update(msg)
		return m, cmd
	}

	// modeList
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.list.MoveUp()
		m.status = ""
	case "down", "j":
		m.list.MoveDown()
		m.status = ""
	case "/":
		m.mode = modeSearch
		m.search.Focus()
	case "r":
		m.pendingQuery = true
		return m, requestSnapshot(m.client)
	case "c":
		m.mode = modeNamePrompt
		m.prompt = NewNamePrompt()
	case "enter", " ":
		node := m.list.SelectedNode()
		if node == nil {
			return m, nil
		}
		if node.Section != nil {
			m.collapsed[node.Section.ID] = !m.collapsed[node.Section.ID]
			m.rebuild()
			return m, nil
		}
		if msg.String() == "enter" && node.Row != nil {
			return m, activateTab(m.client, node.Row.TabID)
		}
	case "d":
		node := m.list.SelectedNode()
		if node != nil && node.Section != nil && node.Section.ID != types.UngroupedID {
			m.mode = modeConfirmDelete
			m.confirm = DeleteConfirm{GroupID: node.Section.ID, GroupName: node.Section.Title}
		}
	case "g":
		node := m.list.SelectedNode()
		if node != nil && node.Row != nil {
			counts := make(map[string]int, len(m.tree.Sections))
			for _, sec := range m.tree.Sections {
				counts[sec.ID] = sec.Count
			}
			m.mode = modeGroupPicker
			m.picker = NewGroupPicker(m.groups.Options(), counts, node.Row.GroupID)
			m.picker.Width = m.width
			m.picker.Height = m.height
		}
	case "n":
		node := m.list.SelectedNode()
		if node != nil && node.Row != nil {
			m.mode = modeNoteEdit
			m.editor = NewNoteEditor(node.Row.TabID, node.Row.Title, m.notes.Get(node.Row.TabID))
		}
	case "p":
		node := m.list.SelectedNode()
		if node != nil && node.Row != nil && !m.previewLoading {
			row := node.Row
			m.previewLoading = true
			m.previewTabID = row.TabID
			m.previewText = ""
			return m, fetchPreview(row.TabID, m.rowURL(row.TabID))
		}
	}
	return m, nil
}

// rebuild derives the view tree from the current snapshot + stored state.
// Called after every mutation and every snapshot replacement, so the
// rendered tree always reflects persisted state.
func (m *Model) rebuild() {
	m.tree = view.Build(m.snapshot, m.groups.All(), m.notes.All(), m.search.Value(), m.collapsed)
	m.list.SetTree(m.tree)
}

// rowURL finds the url of a tab in the current snapshot.
func (m Model) rowURL(tabID int) string {
	for _, t := range m.snapshot {
		if t.ID == tabID {
			return t.URL
		}
	}
	return ""
}

// --- View ---

func (m Model) View() string {
	if !m.haveSnapshot && !m.client.Connected() {
		return fmt.Sprintf("\n  Waiting for extension connection on :%d...\n\n  q quit\n", m.srv.Port())
	}

	topBar := m.viewTopBar()
	searchRow := lipgloss.NewStyle().Padding(0, 1).Render(m.search.View())

	listBorder := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Width(m.list.Width).
		Height(m.list.Height)
	detailBorder := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.detail.Width).
		Height(m.detail.Height)

	var detailContent string
	if node := m.list.SelectedNode(); node != nil {
		if node.Row != nil {
			excerpt := ""
			if m.previewTabID == node.Row.TabID {
				excerpt = m.previewText
			}
			loading := m.previewLoading && m.previewTabID == node.Row.TabID
			detailContent = m.detail.ViewRow(node.Row, m.groupLabel(node.Row.GroupID), excerpt, loading)
		} else if node.Section != nil {
			detailContent = m.detail.ViewSection(node.Section)
		}
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listBorder.Render(m.list.View()),
		detailBorder.Render(detailContent),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, topBar, searchRow, panes, m.viewBottomBar())

	switch m.mode {
	case modeNamePrompt:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.prompt.View())
	case modeConfirmDelete:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case modeGroupPicker:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.picker.View())
	case modeNoteEdit:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.editor.View())
	}

	return body
}

func (m Model) viewTopBar() string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	var conn string
	if m.client.Connected() {
		conn = "Live ● connected"
	} else {
		conn = "Live ○ waiting..."
	}

	stats := fmt.Sprintf("%d tabs · %d groups", m.tree.Stats.TotalTabs, m.tree.Stats.TotalGroups)
	if m.search.Value() != "" {
		stats += fmt.Sprintf(" · %d visible", m.tree.Stats.VisibleTabs)
	}
	if m.stale {
		stats += " · stale"
	}

	return style.Render(conn + "  " + stats)
}

func (m Model) viewBottomBar() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	if m.status != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(0, 1).Render(m.status)
	}
	return style.Render("↑↓/jk navigate · enter open/toggle · / search · c new group · d delete · g move · n note · p preview · r refresh · q quit")
}

func (m Model) groupLabel(groupID string) string {
	if groupID == types.UngroupedID {
		return "Ungrouped"
	}
	if g := m.groups.Find(groupID); g != nil {
		return g.Name
	}
	return groupID
}
