package match3_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// seven covers the letters used by the scenario layouts.
var seven = []match3.PieceType{
	match3.TypeRed, match3.TypeGreen, match3.TypeBlue, match3.TypeYellow,
	match3.TypePurple, match3.TypeOrange, match3.TypeCyan,
}

func newBoard(t *testing.T, w, h, types int, seed uint64) *match3.Board {
	t.Helper()
	b := match3.NewBoard()
	_, err := b.Initialize(w, h, match3.DefaultPalette(types), seed)
	require.NoError(t, err)
	b.Acknowledge()
	return b
}

func TestInitializeSettles(t *testing.T) {
	testCases := []struct {
		name  string
		w, h  int
		types int
		avoid bool
	}{
		{"classic", 8, 8, 6, true},
		{"original", 5, 5, 6, true},
		{"compact without avoidance", 6, 6, 5, false},
		{"relaxed", 7, 7, 4, true},
		{"tall", 4, 9, 5, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := uint64(1); seed <= 20; seed++ {
				b := match3.NewBoard(match3.WithAvoidInitialMatches(tc.avoid))
				res, err := b.Initialize(tc.w, tc.h, match3.DefaultPalette(tc.types), seed)
				require.NoError(t, err)

				g := b.Grid()
				require.True(t, g.IsFull())
				assert.Empty(t, match3.FindMatches(g), "seed %d", seed)
				assert.True(t, match3.HasAvailableMove(g), "seed %d", seed)
				assert.Equal(t, match3.StateIdle, b.State())
				assert.True(t, b.Busy())

				replayed := match3.NewGrid(tc.w, tc.h)
				require.NoError(t, match3.ApplyEvents(replayed, res.Events))
				assert.True(t, replayed.Equal(g), "seed %d: replay diverged", seed)
			}
		})
	}
}

func TestInitializeIsDeterministic(t *testing.T) {
	b1 := match3.NewBoard()
	b2 := match3.NewBoard()
	r1, err := b1.Initialize(8, 8, match3.DefaultPalette(6), 77)
	require.NoError(t, err)
	r2, err := b2.Initialize(8, 8, match3.DefaultPalette(6), 77)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.True(t, b1.Grid().Equal(b2.Grid()))
}

func TestInitializeRejectsBadConfig(t *testing.T) {
	testCases := []struct {
		name    string
		w, h    int
		palette []match3.PieceType
	}{
		{"zero width", 0, 5, match3.DefaultPalette(4)},
		{"negative height", 5, -1, match3.DefaultPalette(4)},
		{"empty palette", 5, 5, nil},
		{"duplicate type", 5, 5, []match3.PieceType{match3.TypeRed, match3.TypeRed}},
		{"unknown type", 5, 5, []match3.PieceType{match3.TypeCount}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := match3.NewBoard()
			_, err := b.Initialize(tc.w, tc.h, tc.palette, 1)
			assert.ErrorIs(t, err, match3.ErrInvalidConfig)
			assert.Nil(t, b.Grid())
		})
	}
}

func TestRequestSwapRejections(t *testing.T) {
	b := match3.NewBoard()
	_, err := b.RequestSwap(match3.C(0, 0), match3.C(1, 0))
	require.ErrorIs(t, err, match3.ErrNotInitialized)

	_, err = b.Initialize(5, 5, match3.DefaultPalette(5), 3)
	require.NoError(t, err)
	before := b.Grid()

	// Not acknowledged yet.
	res, err := b.RequestSwap(match3.C(0, 0), match3.C(1, 0))
	assert.False(t, res.Accepted)
	assert.Equal(t, match3.ReasonBoardBusy, res.Reason)
	assert.ErrorIs(t, err, match3.ErrInvalidSwap)

	b.Acknowledge()

	testCases := []struct {
		name   string
		a, b   match3.Coord
		reason match3.RejectReason
	}{
		{"diagonal", match3.C(0, 0), match3.C(1, 1), match3.ReasonNotAdjacent},
		{"same cell", match3.C(2, 2), match3.C(2, 2), match3.ReasonNotAdjacent},
		{"two apart", match3.C(0, 0), match3.C(2, 0), match3.ReasonNotAdjacent},
		{"off the left", match3.C(-1, 0), match3.C(0, 0), match3.ReasonOutOfRange},
		{"off the top", match3.C(4, 4), match3.C(4, 5), match3.ReasonOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := b.RequestSwap(tc.a, tc.b)
			assert.False(t, res.Accepted)
			assert.Equal(t, tc.reason, res.Reason)
			assert.Empty(t, res.Events)

			var se *match3.SwapError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tc.reason, se.Reason)
			assert.True(t, before.Equal(b.Grid()))
			assert.False(t, b.Busy())
		})
	}
}

func TestRequestSwapRevertsUnproductiveSwap(t *testing.T) {
	b := match3.NewBoard()
	_, err := b.Load(layout(t, `
		P O C
		B Y R
		R R G`), seven, 1)
	require.NoError(t, err)
	b.Acknowledge()
	before := b.Grid()

	res, err := b.RequestSwap(match3.C(0, 2), match3.C(1, 2))
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.True(t, res.Reverted)
	assert.Equal(t, 0, res.Cycles)
	assert.True(t, before.Equal(b.Grid()), "reverted swap must restore the board")

	batches := match3.SplitBatches(res.Events)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 2)

	// Busy until the bounce is acknowledged.
	_, err = b.RequestSwap(match3.C(0, 0), match3.C(1, 0))
	assert.ErrorIs(t, err, match3.ErrInvalidSwap)
}

func TestRequestSwapRevertsEveryUnproductivePair(t *testing.T) {
	checked := 0
	for seed := uint64(1); seed <= 12; seed++ {
		b := newBoard(t, 5, 5, 4, seed)
		g := b.Grid()

		for _, c := range g.AllCoords() {
			for _, n := range []match3.Coord{c.Add(1, 0), c.Add(0, 1)} {
				if !g.InBounds(n) {
					continue
				}
				trial := g.Clone()
				pc, err := trial.Take(c)
				require.NoError(t, err)
				pn, err := trial.Take(n)
				require.NoError(t, err)
				require.NoError(t, trial.Place(c, pn))
				require.NoError(t, trial.Place(n, pc))
				if len(match3.FindMatches(trial)) > 0 {
					continue
				}

				res, err := b.RequestSwap(c, n)
				require.NoError(t, err, "seed %d swap %v<->%v", seed, c, n)
				require.True(t, res.Accepted)
				require.True(t, res.Reverted, "seed %d swap %v<->%v", seed, c, n)
				assert.Equal(t, 0, res.Cycles)
				assert.True(t, g.Equal(b.Grid()), "seed %d swap %v<->%v changed the board", seed, c, n)
				assert.Equal(t, match3.StateIdle, b.State())
				b.Acknowledge()
				checked++
			}
		}
	}
	assert.Positive(t, checked)
}

func TestRequestSwapScenarioThreeByThree(t *testing.T) {
	// Row 0 = [A,A,B], row 1 = [C,D,A], row 2 = [F,G,H].
	b := match3.NewBoard()
	_, err := b.Load(layout(t, `
		P O C
		B Y R
		R R G`), seven, 5)
	require.NoError(t, err)
	b.Acknowledge()

	res, err := b.RequestSwap(match3.C(2, 0), match3.C(2, 1))
	if err != nil {
		// A 3x3 refill can leave nothing to shuffle into.
		require.ErrorIs(t, err, match3.ErrUnshuffleable)
	}
	require.True(t, res.Accepted)
	require.False(t, res.Reverted)
	require.GreaterOrEqual(t, res.Cycles, 1)

	// First cycle: swap, then exactly the bottom row explodes, no bonus.
	var firstCycle []match3.Event
	for _, e := range res.Events {
		if e.Kind == match3.EventCycleSettled {
			break
		}
		firstCycle = append(firstCycle, e)
	}
	assert.Empty(t, eventsOfKind(firstCycle, match3.EventPiecePromoted))
	assert.ElementsMatch(t,
		[]match3.Coord{match3.C(0, 0), match3.C(1, 0), match3.C(2, 0)},
		cellsOf(eventsOfKind(firstCycle, match3.EventPieceRemoved)))
	for _, e := range eventsOfKind(firstCycle, match3.EventPieceRemoved) {
		assert.Equal(t, match3.TypeRed, e.Piece.Type)
	}
}

func TestRequestSwapProperties(t *testing.T) {
	for seed := uint64(1); seed <= 15; seed++ {
		b := newBoard(t, 8, 8, 6, seed)

		for move := 0; move < 10; move++ {
			hint, ok := b.Hint()
			require.True(t, ok, "seed %d: settled board must have a move", seed)
			before := b.Grid()

			res, err := b.RequestSwap(hint.A, hint.B)
			if errors.Is(err, match3.ErrUnshuffleable) {
				assert.Equal(t, match3.StateUnshuffleable, b.State())
				break
			}
			require.NoError(t, err)
			require.True(t, res.Accepted)
			require.False(t, res.Reverted, "hinted move %v must be productive", hint)
			require.GreaterOrEqual(t, res.Cycles, 1)

			after := b.Grid()
			assert.True(t, after.IsFull())
			assert.Empty(t, match3.FindMatches(after), "settle must leave no match")

			replayed := before.Clone()
			require.NoError(t, match3.ApplyEvents(replayed, res.Events))
			require.True(t, replayed.Equal(after), "seed %d move %d: replay diverged", seed, move)

			// Mass conservation per cycle: the board is full before and after
			// every cycle, so removals equal spawns.
			var segment []match3.Event
			for _, e := range res.Events {
				if e.Kind != match3.EventCycleSettled {
					segment = append(segment, e)
					continue
				}
				s := match3.Tally(segment)
				assert.Equal(t, s.Removed, s.Created, "seed %d move %d", seed, move)
				segment = segment[:0]
			}

			b.Acknowledge()
		}
	}
}

func TestLoadResolvesExistingMatches(t *testing.T) {
	b := match3.NewBoard()
	res, err := b.Load(layout(t, `
		G B G B G
		B G B G B
		R R R R R`), seven, 9)
	if err != nil {
		require.ErrorIs(t, err, match3.ErrUnshuffleable)
	}
	require.GreaterOrEqual(t, res.Cycles, 1)

	promotions := eventsOfKind(res.Events, match3.EventPiecePromoted)
	require.NotEmpty(t, promotions)
	assert.Equal(t, match3.C(0, 0), promotions[0].Cell)
	assert.Equal(t, match3.KindRowBonus, promotions[0].Piece.Kind)
	assert.Empty(t, match3.FindMatches(b.Grid()))
}

func TestLoadRejectsPartialLayout(t *testing.T) {
	b := match3.NewBoard()
	_, err := b.Load(layout(t, `
		R G
		B .`), seven, 1)
	assert.ErrorIs(t, err, match3.ErrInvalidConfig)
}

func TestBoardBecomesUnshuffleable(t *testing.T) {
	// At most two of each type: no swap can ever make a run of three.
	b := match3.NewBoard(match3.WithMaxShuffleAttempts(10))
	res, err := b.Load(layout(t, `
		R G B
		Y P R
		G B Y`), seven, 1)
	require.ErrorIs(t, err, match3.ErrUnshuffleable)
	assert.Equal(t, match3.StateUnshuffleable, b.State())

	stats := match3.Tally(res.Events)
	assert.Equal(t, 9, stats.Created)
	assert.True(t, stats.Unshuffleable)

	b.Acknowledge()
	swap, err := b.RequestSwap(match3.C(0, 0), match3.C(1, 0))
	assert.Equal(t, match3.ReasonBoardBusy, swap.Reason)
	assert.ErrorIs(t, err, match3.ErrInvalidSwap)
}

func TestCascadeLimitRollsBack(t *testing.T) {
	b := match3.NewBoard(match3.WithMaxCascades(5))
	_, err := b.Load(layout(t, `
		R G B
		Y P R
		G B R`), seven, 1)
	if err != nil {
		require.ErrorIs(t, err, match3.ErrUnshuffleable)
	}
	before := b.Grid()

	// A single-type palette refills into the same match forever.
	red := []match3.PieceType{match3.TypeRed}
	_, err = b.Load(layout(t, `
		R R R
		R R R
		R R R`), red, 1)
	require.ErrorIs(t, err, match3.ErrCascadeLimit)
	assert.NotErrorIs(t, err, match3.ErrInternalConsistency)
	assert.True(t, before.Equal(b.Grid()), "failed transition must leave the last settled board")
}

func TestCascadeLimitScalesWithBoard(t *testing.T) {
	opts := match3.DefaultOptions()
	assert.Equal(t, match3.CascadesPerCell*144, opts.CascadeLimit(12, 12))
	assert.Equal(t, match3.CascadesPerCell*9, opts.CascadeLimit(3, 3))

	match3.WithMaxCascades(5)(&opts)
	assert.Equal(t, 5, opts.CascadeLimit(12, 12))

	// The scaled default still stops a cascade that never ends.
	b := match3.NewBoard()
	_, err := b.Load(layout(t, `
		R R R
		R R R
		R R R`), []match3.PieceType{match3.TypeRed}, 1)
	require.ErrorIs(t, err, match3.ErrCascadeLimit)
	assert.Equal(t, match3.StateIdle, b.State())
	assert.False(t, b.Busy())
}

func TestHintedPlayOnLargeBoardFinishes(t *testing.T) {
	// Three types on 12x12 cascade for hundreds of cycles before settling.
	for seed := uint64(1); seed <= 20; seed++ {
		b := newBoard(t, 12, 12, 3, seed)

		for move := 0; move < 10; move++ {
			hint, ok := b.Hint()
			require.True(t, ok, "seed %d: settled board must have a move", seed)

			res, err := b.RequestSwap(hint.A, hint.B)
			if errors.Is(err, match3.ErrUnshuffleable) {
				break
			}
			require.NoError(t, err, "seed %d move %d", seed, move)
			require.False(t, res.Reverted)
			assert.Empty(t, match3.FindMatches(b.Grid()))
			b.Acknowledge()
		}
	}
}

func TestBoardLogsThroughOption(t *testing.T) {
	b := match3.NewBoard(match3.WithLogger(nil))
	_, err := b.Initialize(4, 4, match3.DefaultPalette(4), 1)
	if err != nil {
		require.ErrorIs(t, err, match3.ErrUnshuffleable)
	}
}
