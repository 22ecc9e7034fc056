package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// Setup describes the board a game model plays.
type Setup struct {
	ID      string
	Title   string
	Width   int
	Height  int
	Palette []match3.PieceType
	Layout  *match3.Grid // Fixed starting layout, nil for a random board
	Seed    uint64       // Used when the runtime seed is zero
}

// VariantSetup returns the setup of a registered variant.
func VariantSetup(v registry.Variant) Setup {
	return Setup{
		ID:      v.ID,
		Title:   v.Title,
		Width:   v.Width,
		Height:  v.Height,
		Palette: v.Palette(),
	}
}

// LevelSetup returns the setup of a preset layout.
func LevelSetup(l levels.Level) Setup {
	return Setup{
		ID:      l.ID,
		Title:   l.Name,
		Width:   l.Width,
		Height:  l.Height,
		Palette: l.Palette,
		Layout:  l.Layout,
		Seed:    l.Seed,
	}
}

// Start initializes b with the setup's board.
func (s Setup) Start(b *match3.Board, seed uint64) (match3.InitResult, error) {
	if s.Layout != nil {
		return b.Load(s.Layout.Clone(), s.Palette, seed)
	}
	return b.Initialize(s.Width, s.Height, s.Palette, seed)
}

// GameOptions carries the collaborators of a game model.
type GameOptions struct {
	Store  *storage.Store // Optional, sessions are not recorded when nil
	Logger *log.Logger
	Board  []match3.Option
}

// Model is the Bubble Tea model for playing one board.
//
// The model mirrors the board in its own grid and replays each result's
// events onto it one batch at a time. The board is acknowledged once the
// last batch is on screen, so swaps requested during playback are refused.
type Model struct {
	setup  Setup
	opts   GameOptions
	config core.RuntimeConfig
	logger *log.Logger

	board *match3.Board
	view  *match3.Grid
	seed  uint64
	queue [][]match3.Event
	wait  int // Ticks left before the next batch is applied

	cursor   match3.Coord
	selected *match3.Coord
	hint     *match3.Move
	message  string

	swaps   int
	reverts int
	stats   match3.Stats
	started time.Time
	outcome storage.Outcome
	over    bool
	saved   bool

	screen     *core.Screen
	keys       GameKeyMap
	help       help.Model
	embedded   bool // Running inside the SSH session flow
	quitting   bool
	backToMenu bool
}

// NewModel creates a game model and starts its first board.
func NewModel(setup Setup, cfg core.RuntimeConfig, opts GameOptions) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.BatchTicks <= 0 {
		cfg.BatchTicks = core.DefaultConfig().BatchTicks
	}

	m := Model{
		setup:  setup,
		opts:   opts,
		config: cfg,
		logger: logger,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = setup.Seed
	}
	if seed == 0 {
		seed = cfg.ResolveSeed()
	}
	m.start(seed)
	return m
}

// start replaces the board with a fresh one built from the setup.
func (m *Model) start(seed uint64) {
	b := match3.NewBoard(append([]match3.Option{match3.WithLogger(m.logger)}, m.opts.Board...)...)
	res, err := m.setup.Start(b, seed)

	m.board = b
	m.seed = seed
	m.view = match3.NewGrid(m.setup.Width, m.setup.Height)
	m.queue = nil
	m.wait = 0
	m.cursor = match3.C(0, m.setup.Height-1)
	m.selected = nil
	m.hint = nil
	m.message = ""
	m.swaps, m.reverts = 0, 0
	m.stats = match3.Stats{}
	m.started = time.Now()
	m.outcome = ""
	m.over = false
	m.saved = false

	switch {
	case errors.Is(err, match3.ErrUnshuffleable):
		m.enqueue(res.Events)
	case err != nil:
		m.logger.Error("cannot start board", "setup", m.setup.ID, "err", err)
		m.message = fmt.Sprintf("cannot start board: %v", err)
		m.end(storage.OutcomeError)
		return
	default:
		m.enqueue(res.Events)
	}
	m.logger.Debug("board started", "setup", m.setup.ID, "seed", seed, "cycles", res.Cycles, "batch_delay", m.config.BatchDelay())
}

// enqueue schedules events for playback, one batch per step.
func (m *Model) enqueue(events []match3.Event) {
	batches := match3.SplitBatches(events)
	if len(batches) == 0 {
		return
	}
	if len(m.queue) == 0 {
		m.wait = 0
	}
	m.queue = append(m.queue, batches...)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.step()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// Playing reports whether playback is still running.
func (m Model) Playing() bool {
	return len(m.queue) > 0
}

// step advances playback by one tick.
func (m *Model) step() {
	if len(m.queue) == 0 {
		return
	}
	if m.wait > 0 {
		m.wait--
		return
	}

	batch := m.queue[0]
	m.queue = m.queue[1:]
	if err := match3.ApplyEvents(m.view, batch); err != nil {
		m.logger.Warn("playback diverged, resyncing", "err", err)
		m.view = m.board.Grid()
	}
	m.note(batch)
	m.wait = m.config.BatchTicks

	if len(m.queue) == 0 {
		m.settled()
	}
}

// note updates the status line from the markers of a batch.
func (m *Model) note(batch []match3.Event) {
	for _, e := range batch {
		switch e.Kind {
		case match3.EventShuffled:
			m.message = "no moves left, board shuffled"
		case match3.EventUnshuffleable:
			m.message = "no moves left and the board cannot be shuffled"
		}
	}
}

// settled runs once the last batch of a result is on screen.
func (m *Model) settled() {
	m.board.Acknowledge()
	m.wait = 0
	if g := m.board.Grid(); !m.view.Equal(g) {
		m.logger.Warn("view out of sync after playback", "setup", m.setup.ID)
		m.view = g
	}
	if m.board.State() == match3.StateUnshuffleable {
		m.end(storage.OutcomeUnshuffleable)
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.record(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.record(storage.OutcomeQuit)
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionRestart:
		m.record(storage.OutcomeQuit)
		m.start(uint64(time.Now().UnixNano()))

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		dx, dy := action.Delta()
		// Screen y grows downwards, board y grows upwards.
		m.cursor = match3.C(
			core.Clamp(m.cursor.X+dx, 0, m.setup.Width-1),
			core.Clamp(m.cursor.Y-dy, 0, m.setup.Height-1),
		)

	case core.ActionCancel:
		m.selected = nil

	case core.ActionHint:
		m.showHint()

	case core.ActionSelect:
		m.selectCell()
	}

	return m, nil
}

func (m *Model) showHint() {
	if m.over {
		return
	}
	mv, ok := m.board.Hint()
	if !ok {
		m.message = "no moves available"
		return
	}
	m.hint = &mv
	m.message = fmt.Sprintf("try %s", mv)
}

// selectCell picks the piece under the cursor or swaps it with the picked one.
func (m *Model) selectCell() {
	if m.over {
		m.message = "game over, press r for a new board"
		return
	}
	c := m.cursor
	switch {
	case m.selected == nil:
		m.selected = &c
	case *m.selected == c:
		m.selected = nil
	case m.selected.Adjacent(c):
		a := *m.selected
		m.swap(a, c)
	default:
		m.selected = &c
	}
}

func (m *Model) swap(a, c match3.Coord) {
	res, err := m.board.RequestSwap(a, c)

	var swapErr *match3.SwapError
	switch {
	case errors.As(err, &swapErr):
		m.message = rejectMessage(swapErr.Reason)
		return
	case errors.Is(err, match3.ErrCascadeLimit):
		// The board rolled back to the last settled state and stays playable.
		m.logger.Warn("swap aborted", "a", a, "b", c, "err", err)
		m.message = "cascade too long, swap undone"
		m.selected = nil
		return
	case err != nil && !errors.Is(err, match3.ErrUnshuffleable):
		m.logger.Error("swap failed", "a", a, "b", c, "err", err)
		m.message = fmt.Sprintf("internal error: %v", err)
		m.view = m.board.Grid()
		m.end(storage.OutcomeError)
		return
	}

	m.selected = nil
	m.hint = nil
	if res.Reverted {
		m.reverts++
		m.message = "no match"
	} else {
		m.swaps++
		m.message = ""
		if res.Cycles > 1 {
			m.message = fmt.Sprintf("chain x%d", res.Cycles)
		}
	}
	m.stats.Add(match3.Tally(res.Events))
	m.enqueue(res.Events)
}

func rejectMessage(r match3.RejectReason) string {
	switch r {
	case match3.ReasonBoardBusy:
		return "board busy"
	case match3.ReasonNotAdjacent:
		return "pieces are not adjacent"
	case match3.ReasonOutOfRange:
		return "outside the board"
	default:
		return "swap refused"
	}
}

// end marks the session as finished and records it.
func (m *Model) end(outcome storage.Outcome) {
	m.over = true
	m.record(outcome)
}

// record saves the session once. Sessions without a single swap are skipped
// unless they ended on their own.
func (m *Model) record(outcome storage.Outcome) {
	if m.saved {
		return
	}
	if m.outcome == "" {
		m.outcome = outcome
	}
	if m.swaps+m.reverts == 0 && outcome == storage.OutcomeQuit {
		return
	}
	m.saved = true
	if m.opts.Store == nil {
		return
	}

	id, err := m.opts.Store.SaveSession(m.Session())
	if err != nil {
		m.logger.Warn("cannot record session", "err", err)
		return
	}
	m.logger.Debug("session recorded", "id", id, "outcome", m.outcome)
}

// Session returns the telemetry of the current board.
func (m Model) Session() storage.Session {
	outcome := m.outcome
	if outcome == "" {
		outcome = storage.OutcomeQuit
	}
	return storage.Session{
		Variant:  m.setup.ID,
		Seed:     m.seed,
		Width:    m.setup.Width,
		Height:   m.setup.Height,
		Types:    len(m.setup.Palette),
		Swaps:    m.swaps,
		Reverts:  m.reverts,
		Stats:    m.stats,
		Outcome:  outcome,
		Duration: time.Since(m.started),
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	helpLines := strings.Count(helpView, "\n") + 1

	m.screen.Resize(m.config.ScreenW, core.Max(0, m.config.ScreenH-helpLines-1))
	m.screen.Clear()

	frame := boardFrame(m.setup.Width, m.setup.Height)
	// Title above the frame, HUD and status line below it.
	at := core.CenteredRect(frame.W, frame.H+3, m.screen.Width(), m.screen.Height())
	frame.X, frame.Y = at.X, at.Y+1

	m.screen.DrawTextCentered(at.Y, strings.ToUpper(m.setup.Title), core.ColorBrightWhite)
	drawBoard(m.screen, m.view, frame, boardOverlay{
		cursor:     m.cursor,
		showCursor: !m.over,
		selected:   m.selected,
		hint:       m.hint,
	})

	hud := fmt.Sprintf("swaps %d  removed %d  bonuses %d  chains %d",
		m.swaps, m.stats.Removed, m.stats.Promoted, m.stats.Cycles)
	m.screen.DrawTextCentered(frame.Bottom(), hud, core.ColorWhite)

	status := m.message
	if m.Playing() && status == "" {
		status = "..."
	}
	m.screen.DrawTextCentered(frame.Bottom()+1, status, core.ColorYellow)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(helpView)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single board.
func Run(setup Setup, cfg core.RuntimeConfig, opts GameOptions) error {
	model := NewModel(setup, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
