package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// MenuItem represents a selectable board in the menu.
type MenuItem struct {
	Setup  Setup
	Detail string
}

// MenuItems lists every registered variant followed by the given presets.
func MenuItems(presets []levels.Level) []MenuItem {
	infos := registry.List()
	items := make([]MenuItem, 0, len(infos)+len(presets))

	for _, info := range infos {
		v, err := registry.Get(info.ID)
		if err != nil {
			continue
		}
		items = append(items, MenuItem{
			Setup:  VariantSetup(v),
			Detail: fmt.Sprintf("%dx%d, %d colours", v.Width, v.Height, v.Types),
		})
	}
	for _, l := range presets {
		items = append(items, MenuItem{
			Setup:  LevelSetup(l),
			Detail: fmt.Sprintf("preset %dx%d", l.Width, l.Height),
		})
	}
	return items
}

// MenuModel is the Bubble Tea model for the board picker menu.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	width        int
	height       int
	config       core.RuntimeConfig
	keys         MenuKeyMap
	help         help.Model
	quitting     bool
	selected     *MenuItem // Set when user selects a board
	openSessions bool      // True if user pressed Tab for the history
}

// NewMenuModel creates a new menu model.
func NewMenuModel(items []MenuItem, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = core.Wrap(m.cursor-1, len(m.items))

	case key.Matches(msg, m.keys.Down):
		m.cursor = core.Wrap(m.cursor+1, len(m.items))

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Sessions):
		m.openSessions = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  M A T C H - 3  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a board", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-14s %s", item.Setup.Title, menuDetailStyle.Render(item.Detail))
		if i == m.cursor {
			line = menuCursorStyle.Render("> "+fmt.Sprintf("%-14s", item.Setup.Title)) + " " + menuDetailStyle.Render(item.Detail)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsSessions returns true if user requested the session history.
func (m MenuModel) WantsSessions() bool {
	return m.openSessions
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring ANSI sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Setup         *Setup
	Config        core.RuntimeConfig
	WantsSessions bool
	Quit          bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(items []MenuItem, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(items, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsSessions():
		result.WantsSessions = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		setup := m.Selected().Setup
		result.Setup = &setup
	}

	return result, nil
}
