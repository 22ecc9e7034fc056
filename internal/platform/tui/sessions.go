package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the per-variant summary
	sidebarWidth       = 24  // Width of the summary sidebar
	maxSessions        = 100 // Max sessions to load
)

// SessionsKeyMap defines the key bindings for the session history.
type SessionsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.PrevFilter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter, k.PrevFilter},
		{k.Back, k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next board"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionsModel is the Bubble Tea model for the session history screen.
type SessionsModel struct {
	filters     []string // "" first, meaning every board
	filter      int
	store       *storage.Store
	sessions    []storage.Session
	stats       map[string]*storage.VariantStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        SessionsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewSessionsModel creates a new session history model.
func NewSessionsModel(store *storage.Store, width, height int) SessionsModel {
	h := help.New()
	h.ShowAll = false

	m := SessionsModel{
		filters:     []string{""},
		store:       store,
		keys:        DefaultSessionsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		stats, err := store.StatsByVariant()
		if err != nil {
			m.loadErr = err
		}
		m.stats = stats
		for id := range stats {
			m.filters = append(m.filters, id)
		}
		sort.Strings(m.filters[1:])
	}

	m.table = m.createTable()
	m.loadSessions()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Board", Width: 10},
		{Title: "Seed", Width: 10},
		{Title: "Swaps", Width: 6},
		{Title: "Removed", Width: 8},
		{Title: "Chains", Width: 7},
		{Title: "Outcome", Width: 13},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSessions loads the sessions for the current filter.
func (m *SessionsModel) loadSessions() {
	m.sessions = nil
	if m.store != nil {
		sessions, err := m.store.RecentSessions(m.filters[m.filter], maxSessions)
		if err != nil {
			m.loadErr = err
		}
		m.sessions = sessions
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current sessions.
func (m *SessionsModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = sessionRow(s)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func sessionRow(s storage.Session) table.Row {
	seed := fmt.Sprintf("%d", s.Seed)
	if len(seed) > 10 {
		seed = seed[:9] + "…"
	}
	return table.Row{
		s.Variant,
		seed,
		fmt.Sprintf("%d", s.Swaps),
		fmt.Sprintf("%d", s.Stats.Removed),
		fmt.Sprintf("%d", s.Stats.Cycles),
		string(s.Outcome),
		s.CreatedAt.Format("Jan 02 15:04"),
	}
}

// Init initializes the history model.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextFilter):
			m.filter = (m.filter + 1) % len(m.filters)
			m.loadSessions()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.filter--
			if m.filter < 0 {
				m.filter = len(m.filters) - 1
			}
			m.loadSessions()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// filterTitle returns the display name of the current filter.
func (m SessionsModel) filterTitle() string {
	if f := m.filters[m.filter]; f != "" {
		return f
	}
	return "all boards"
}

// View renders the history screen.
func (m SessionsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("SESSIONS - %s", m.filterTitle())
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the aggregate of the current filter.
func (m SessionsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Summary\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	var vs []*storage.VariantStats
	if f := m.filters[m.filter]; f != "" {
		if s, ok := m.stats[f]; ok {
			vs = append(vs, s)
		}
	} else {
		for _, id := range m.filters[1:] {
			vs = append(vs, m.stats[id])
		}
	}

	var total storage.VariantStats
	for _, s := range vs {
		total.Sessions += s.Sessions
		total.TotalSwaps += s.TotalSwaps
		total.TotalRemoved += s.TotalRemoved
		total.BestRemoved = max(total.BestRemoved, s.BestRemoved)
		total.MaxCycles = max(total.MaxCycles, s.MaxCycles)
		total.Unshuffleable += s.Unshuffleable
	}

	fmt.Fprintf(&sb, "sessions  %d\n", total.Sessions)
	fmt.Fprintf(&sb, "swaps     %d\n", total.TotalSwaps)
	fmt.Fprintf(&sb, "removed   %d\n", total.TotalRemoved)
	fmt.Fprintf(&sb, "best      %d\n", total.BestRemoved)
	fmt.Fprintf(&sb, "chains    %d\n", total.MaxCycles)
	fmt.Fprintf(&sb, "stuck     %d", total.Unshuffleable)

	return sidebarStyle.Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m SessionsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Session history is unavailable.\nThe database could not be opened.")
	case m.loadErr != nil:
		return emptyStyle.Render(fmt.Sprintf("Cannot load sessions:\n%v", m.loadErr))
	case len(m.sessions) == 0:
		return emptyStyle.Render("No sessions recorded yet.\nPlay a board to start the history!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SessionsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SessionsModel) IsQuitting() bool {
	return m.quitting
}

// RunSessions runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunSessions(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewSessionsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(SessionsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
