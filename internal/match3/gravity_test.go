package match3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

func TestSettleCompactsAndRefills(t *testing.T) {
	g := layout(t, `
		R  .  B
		.  G  .
		Y  .  .
		.  P  .`)
	before := g.Clone()

	events, err := match3.Settle(g, spawnerOf(t, "O", "C", "W", "O", "C", "W", "O"))
	require.NoError(t, err)

	expected := layout(t, `
		C  O  O
		O  W  W
		R  G  C
		Y  P  B`)
	assert.True(t, expected.Equal(g), "got:\n%s", match3.RenderASCII(g))

	stats := match3.Tally(events)
	assert.Equal(t, 7, stats.Created)
	assert.Equal(t, 8, stats.Moved)

	// Existing pieces all drop together in the first batch.
	first := match3.SplitBatches(events)[0]
	assert.Equal(t, []match3.Event{
		{Kind: match3.EventPieceMoved, Batch: 0, From: match3.C(0, 1), Cell: match3.C(0, 0), Piece: match3.NewPiece(match3.TypeYellow)},
		{Kind: match3.EventPieceMoved, Batch: 0, From: match3.C(0, 3), Cell: match3.C(0, 1), Piece: match3.NewPiece(match3.TypeRed)},
		{Kind: match3.EventPieceMoved, Batch: 0, From: match3.C(1, 2), Cell: match3.C(1, 1), Piece: match3.NewPiece(match3.TypeGreen)},
		{Kind: match3.EventPieceMoved, Batch: 0, From: match3.C(2, 3), Cell: match3.C(2, 0), Piece: match3.NewPiece(match3.TypeBlue)},
	}, first)

	// New pieces always appear at the top of their column.
	for _, e := range eventsOfKind(events, match3.EventPieceCreated) {
		assert.Equal(t, g.H-1, e.Cell.Y)
	}

	replayed := before.Clone()
	require.NoError(t, match3.ApplyEvents(replayed, events))
	assert.True(t, replayed.Equal(g))
}

func TestSettleFullGridIsNoop(t *testing.T) {
	g := layout(t, `
		R G
		B Y`)
	before := g.Clone()

	events, err := match3.Settle(g, spawnerOf(t, "W"))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.True(t, before.Equal(g))
}

func TestSettleEmptyColumn(t *testing.T) {
	g := layout(t, `
		.  G
		.  B
		.  Y`)

	events, err := match3.Settle(g, spawnerOf(t, "R", "O", "P"))
	require.NoError(t, err)

	// Three spawns: created at top, dropped, created, dropped, created.
	assert.Equal(t, []match3.Event{
		{Kind: match3.EventPieceCreated, Batch: 0, Cell: match3.C(0, 2), Piece: match3.NewPiece(match3.TypeRed)},
		{Kind: match3.EventPieceMoved, Batch: 1, From: match3.C(0, 2), Cell: match3.C(0, 0), Piece: match3.NewPiece(match3.TypeRed)},
		{Kind: match3.EventPieceCreated, Batch: 2, Cell: match3.C(0, 2), Piece: match3.NewPiece(match3.TypeOrange)},
		{Kind: match3.EventPieceMoved, Batch: 3, From: match3.C(0, 2), Cell: match3.C(0, 1), Piece: match3.NewPiece(match3.TypeOrange)},
		{Kind: match3.EventPieceCreated, Batch: 4, Cell: match3.C(0, 2), Piece: match3.NewPiece(match3.TypePurple)},
	}, events)
}

func TestSettlePreservesColumnOrder(t *testing.T) {
	rng := match3.NewRNG(42)
	palette := match3.DefaultPalette(6)

	for i := 0; i < 100; i++ {
		g := match3.NewGrid(5, 7)
		f := match3.NewFactory(palette, rng)
		for _, c := range g.AllCoords() {
			if rng.Intn(3) > 0 {
				require.NoError(t, g.Place(c, f.Spawn()))
			}
		}

		survivors := make([][]match3.Piece, g.W)
		for x := 0; x < g.W; x++ {
			for y := 0; y < g.H; y++ {
				if p, ok := g.PieceAt(match3.C(x, y)); ok {
					survivors[x] = append(survivors[x], p)
				}
			}
		}

		_, err := match3.Settle(g, f)
		require.NoError(t, err)
		require.True(t, g.IsFull())

		for x := 0; x < g.W; x++ {
			for y, want := range survivors[x] {
				got, _ := g.PieceAt(match3.C(x, y))
				require.Equal(t, want, got, "column %d position %d", x, y)
			}
		}
	}
}
