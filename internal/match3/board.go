package match3

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// State is the phase of the board state machine.
type State uint8

const (
	StateIdle State = iota
	StateSwapping
	StateResolving
	StateShuffling
	StateUnshuffleable // Terminal
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSwapping:
		return "swapping"
	case StateResolving:
		return "resolving"
	case StateShuffling:
		return "shuffling"
	case StateUnshuffleable:
		return "unshuffleable"
	default:
		return "unknown"
	}
}

// InitResult is the outcome of Initialize or Load. Replaying Events onto an
// empty grid of the same size reproduces the board.
type InitResult struct {
	Events []Event
	Cycles int // Cascade cycles run while settling
}

// SwapResult is the outcome of RequestSwap.
type SwapResult struct {
	Accepted bool
	Reason   RejectReason // Set when Accepted is false
	Reverted bool         // The swap produced no match and was undone
	Events   []Event
	Cycles   int
}

// Board owns a grid and sequences swaps, cascades and shuffles.
//
// Every transition is computed on a copy of the grid and RNG and committed
// only when it completes, so a failed transition leaves the last settled
// board in place. A result carrying events leaves the board busy until
// Acknowledge is called.
type Board struct {
	opts    Options
	log     *log.Logger
	grid    *Grid
	palette []PieceType
	rng     RNG
	state   State
	busy    bool
}

// NewBoard creates an uninitialized board.
func NewBoard(opts ...Option) *Board {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.normalize()
	return &Board{
		opts: o,
		log:  o.Logger,
	}
}

// txn is one in-flight transition.
type txn struct {
	grid    *Grid
	rng     RNG
	factory *Factory
	events  []Event
	cycles  int
	prev    State // State to restore if the transition fails
}

func (b *Board) begin(g *Grid, rng RNG, palette []PieceType) *txn {
	t := &txn{grid: g, rng: rng, prev: b.state}
	t.factory = NewFactory(palette, &t.rng)
	t.factory.ResampleLimit = b.opts.ResampleLimit
	return t
}

// Initialize fills a new width x height board from palette and settles it.
func (b *Board) Initialize(width, height int, palette []PieceType, seed uint64) (InitResult, error) {
	if width < 1 || height < 1 {
		return InitResult{}, fmt.Errorf("%w: board size %dx%d", ErrInvalidConfig, width, height)
	}
	if err := validatePalette(palette); err != nil {
		return InitResult{}, err
	}

	t := b.begin(NewGrid(width, height), *NewRNG(seed), palette)
	for _, c := range t.grid.AllCoords() {
		var p Piece
		if b.opts.AvoidInitialMatches {
			p = t.factory.SpawnAvoiding(t.grid, c)
		} else {
			p = t.factory.Spawn()
		}
		if err := t.grid.Place(c, p); err != nil {
			return InitResult{}, err
		}
		t.events = append(t.events, created(0, c, p))
	}

	b.log.Info("initializing board", "width", width, "height", height, "types", len(palette), "seed", seed)
	err := b.finish(t, palette, b.settleAndCheck(t))
	if err != nil && !errors.Is(err, ErrUnshuffleable) {
		return InitResult{}, err
	}
	return InitResult{Events: t.events, Cycles: t.cycles}, err
}

// Load starts a session from a prepared, completely filled grid. Any matches
// already on it are resolved.
func (b *Board) Load(g *Grid, palette []PieceType, seed uint64) (InitResult, error) {
	if g == nil || g.W < 1 || g.H < 1 {
		return InitResult{}, fmt.Errorf("%w: empty layout", ErrInvalidConfig)
	}
	if !g.IsFull() {
		return InitResult{}, fmt.Errorf("%w: layout has %d empty cells", ErrInvalidConfig, len(g.Cells)-g.FilledCount())
	}
	if err := validatePalette(palette); err != nil {
		return InitResult{}, err
	}

	t := b.begin(g.Clone(), *NewRNG(seed), palette)
	for _, c := range t.grid.AllCoords() {
		p, _ := t.grid.PieceAt(c)
		if p.Type >= TypeCount {
			return InitResult{}, fmt.Errorf("%w: unknown piece type %d at %v", ErrInvalidConfig, p.Type, c)
		}
		t.events = append(t.events, created(0, c, p))
	}

	b.log.Info("loading board", "width", g.W, "height", g.H, "types", len(palette), "seed", seed)
	err := b.finish(t, palette, b.settleAndCheck(t))
	if err != nil && !errors.Is(err, ErrUnshuffleable) {
		return InitResult{}, err
	}
	return InitResult{Events: t.events, Cycles: t.cycles}, err
}

// RequestSwap exchanges the pieces at a and c. A swap that produces no match
// is undone and reported as Reverted; otherwise the board cascades until
// quiescent and reshuffles if no move remains.
//
// Rejected requests return Accepted == false and a *SwapError; the board is
// unchanged.
func (b *Board) RequestSwap(a, c Coord) (SwapResult, error) {
	if b.grid == nil {
		return SwapResult{}, ErrNotInitialized
	}
	reject := func(r RejectReason) (SwapResult, error) {
		b.log.Debug("swap rejected", "a", a, "b", c, "reason", r)
		return SwapResult{Reason: r}, &SwapError{Reason: r, A: a, B: c}
	}
	switch {
	case b.busy || b.state != StateIdle:
		return reject(ReasonBoardBusy)
	case !b.grid.InBounds(a) || !b.grid.InBounds(c):
		return reject(ReasonOutOfRange)
	case !a.Adjacent(c):
		return reject(ReasonNotAdjacent)
	}

	t := b.begin(b.grid.Clone(), b.rng, b.palette)
	b.setState(StateSwapping)

	pa, pc, err := exchange(t.grid, a, c)
	if err != nil {
		return SwapResult{}, b.finish(t, b.palette, err)
	}
	t.events = append(t.events, moved(0, a, c, pa), moved(0, c, a, pc))

	if len(FindMatches(t.grid)) == 0 {
		if _, _, err := exchange(t.grid, a, c); err != nil {
			return SwapResult{}, b.finish(t, b.palette, err)
		}
		t.events = append(t.events, moved(1, c, a, pa), moved(1, a, c, pc))
		b.log.Debug("swap reverted", "a", a, "b", c)
		_ = b.finish(t, b.palette, nil)
		return SwapResult{Accepted: true, Reverted: true, Events: t.events}, nil
	}

	err = b.finish(t, b.palette, b.settleAndCheck(t))
	if err != nil && !errors.Is(err, ErrUnshuffleable) {
		return SwapResult{}, err
	}
	return SwapResult{Accepted: true, Events: t.events, Cycles: t.cycles}, err
}

// exchange swaps the pieces of two filled cells.
func exchange(g *Grid, a, c Coord) (Piece, Piece, error) {
	pa, err := g.Take(a)
	if err != nil {
		return Piece{}, Piece{}, err
	}
	pc, err := g.Take(c)
	if err != nil {
		return Piece{}, Piece{}, err
	}
	if err := g.Place(a, pc); err != nil {
		return Piece{}, Piece{}, err
	}
	if err := g.Place(c, pa); err != nil {
		return Piece{}, Piece{}, err
	}
	return pa, pc, nil
}

// settleAndCheck runs cascade cycles until no match remains, then shuffles
// if the board is deadlocked.
func (b *Board) settleAndCheck(t *txn) error {
	for {
		groups := FindMatches(t.grid)
		if len(groups) == 0 {
			break
		}
		if t.cycles >= b.opts.CascadeLimit(t.grid.W, t.grid.H) {
			return ErrCascadeLimit
		}
		b.setState(StateResolving)

		cycle, err := Resolve(t.grid, groups)
		if err != nil {
			return err
		}
		refill, err := Settle(t.grid, t.factory)
		if err != nil {
			return err
		}
		cycle = appendBatches(cycle, refill)
		cycle = append(cycle, marker(nextBatch(cycle), EventCycleSettled))
		t.events = appendBatches(t.events, cycle)
		t.cycles++
		b.log.Debug("cycle settled", "cycle", t.cycles, "groups", len(groups))
	}

	if HasAvailableMove(t.grid) {
		return nil
	}
	b.setState(StateShuffling)
	b.log.Info("no moves left, shuffling")
	evs, err := Shuffle(t.grid, &t.rng, b.opts.MaxShuffleAttempts)
	t.events = appendBatches(t.events, evs)
	return err
}

// finish commits t unless err is an internal failure.
func (b *Board) finish(t *txn, palette []PieceType, err error) error {
	if err != nil && !errors.Is(err, ErrUnshuffleable) {
		b.log.Error("transition aborted", "err", err)
		b.setState(t.prev)
		return err
	}
	b.grid = t.grid
	b.rng = t.rng
	b.palette = append([]PieceType(nil), palette...)
	if len(t.events) > 0 {
		b.busy = true
	}
	if err != nil {
		b.log.Warn("board is unshuffleable", "attempts", b.opts.MaxShuffleAttempts)
		b.setState(StateUnshuffleable)
		return err
	}
	b.setState(StateIdle)
	return nil
}

func (b *Board) setState(s State) {
	if b.state == s {
		return
	}
	b.log.Debug("state", "from", b.state, "to", s)
	b.state = s
}

// Acknowledge tells the board the events of the last result were rendered.
func (b *Board) Acknowledge() {
	b.busy = false
}

// State returns the current state.
func (b *Board) State() State {
	return b.state
}

// Busy reports whether the board waits for Acknowledge.
func (b *Board) Busy() bool {
	return b.busy
}

// Grid returns a copy of the current grid, or nil before initialization.
func (b *Board) Grid() *Grid {
	if b.grid == nil {
		return nil
	}
	return b.grid.Clone()
}

// Palette returns the piece types the board spawns.
func (b *Board) Palette() []PieceType {
	return append([]PieceType(nil), b.palette...)
}

// Hint returns a productive swap on the current board.
func (b *Board) Hint() (Move, bool) {
	if b.grid == nil {
		return Move{}, false
	}
	return FindMove(b.grid)
}

func validatePalette(palette []PieceType) error {
	if len(palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	}
	seen := make(map[PieceType]bool, len(palette))
	for _, t := range palette {
		if t >= TypeCount {
			return fmt.Errorf("%w: unknown piece type %d", ErrInvalidConfig, t)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate piece type %s", ErrInvalidConfig, t)
		}
		seen[t] = true
	}
	return nil
}
