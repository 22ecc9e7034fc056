package match3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

func TestResolveThreeRemovesWithoutBonus(t *testing.T) {
	g := layout(t, `
		G B G B
		B G B G
		R R R G`)

	events, err := match3.Resolve(g, match3.FindMatches(g))
	require.NoError(t, err)

	assert.Empty(t, eventsOfKind(events, match3.EventPiecePromoted))
	assert.Equal(t, []match3.Coord{match3.C(0, 0), match3.C(1, 0), match3.C(2, 0)},
		cellsOf(eventsOfKind(events, match3.EventPieceRemoved)))
	assert.Equal(t, 9, g.FilledCount())
}

func TestResolveFiveRunPromotesLeftmost(t *testing.T) {
	g := layout(t, `
		G B G B G
		B G B G B
		R R R R R`)

	events, err := match3.Resolve(g, match3.FindMatches(g))
	require.NoError(t, err)

	promotions := eventsOfKind(events, match3.EventPiecePromoted)
	require.Len(t, promotions, 1)
	assert.Equal(t, match3.C(0, 0), promotions[0].Cell)
	assert.Equal(t, match3.Piece{Type: match3.TypeRed, Kind: match3.KindRowBonus}, promotions[0].Piece)
	assert.Equal(t, 0, promotions[0].Batch)

	removals := eventsOfKind(events, match3.EventPieceRemoved)
	assert.Equal(t, []match3.Coord{match3.C(1, 0), match3.C(2, 0), match3.C(3, 0), match3.C(4, 0)}, cellsOf(removals))
	for _, e := range removals {
		assert.Equal(t, 1, e.Batch)
	}

	p, ok := g.PieceAt(match3.C(0, 0))
	require.True(t, ok)
	assert.Equal(t, match3.KindRowBonus, p.Kind)
}

func TestResolveVerticalFourPromotesColumnBonus(t *testing.T) {
	g := layout(t, `
		R G
		R B
		R G
		R B`)

	events, err := match3.Resolve(g, match3.FindMatches(g))
	require.NoError(t, err)

	promotions := eventsOfKind(events, match3.EventPiecePromoted)
	require.Len(t, promotions, 1)
	assert.Equal(t, match3.C(0, 0), promotions[0].Cell)
	assert.Equal(t, match3.KindColBonus, promotions[0].Piece.Kind)
	assert.Len(t, eventsOfKind(events, match3.EventPieceRemoved), 3)
}

func TestResolveBonusDeterminism(t *testing.T) {
	testCases := []struct {
		name   string
		layout string
		size   int
	}{
		{"four", "G B G B\nB G B G\nY Y Y Y", 4},
		{"five", "G B G B G\nB G B G B\nY Y Y Y Y", 5},
		{"L of five", "Y G B\nY B G\nY Y Y", 5},
		{"T of seven", "G Y G B G\nB Y B G B\nY Y Y Y Y", 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := layout(t, tc.layout)
			before := g.FilledCount()
			groups := match3.FindMatches(g)
			require.Len(t, groups, 1)
			require.Equal(t, tc.size, groups[0].Size())
			first := groups[0].Cells[0]

			events, err := match3.Resolve(g, groups)
			require.NoError(t, err)

			promotions := eventsOfKind(events, match3.EventPiecePromoted)
			require.Len(t, promotions, 1)
			assert.Equal(t, first, promotions[0].Cell)
			assert.Len(t, eventsOfKind(events, match3.EventPieceRemoved), tc.size-1)
			assert.Equal(t, before-(tc.size-1), g.FilledCount())
		})
	}
}

func TestResolveRowBonusClearsRow(t *testing.T) {
	g := layout(t, `
		R  B  G  Y  B
		R  Y  B  G  Y
		R- G  B  Y  G`)

	groups := match3.FindMatches(g)
	require.Len(t, groups, 1)
	require.Equal(t, match3.AxisVertical, groups[0].Axis)

	events, err := match3.Resolve(g, groups)
	require.NoError(t, err)

	assert.Empty(t, eventsOfKind(events, match3.EventPiecePromoted))
	assert.Equal(t, []match3.Coord{
		match3.C(0, 0), match3.C(0, 1), match3.C(0, 2),
		match3.C(1, 0), match3.C(2, 0), match3.C(3, 0), match3.C(4, 0),
	}, cellsOf(events))

	for x := 0; x < g.W; x++ {
		assert.False(t, g.At(match3.C(x, 0)).Filled, "row 0 col %d should be cleared", x)
	}
	assert.Equal(t, 8, g.FilledCount())
}

func TestResolveChainedBonusesTerminate(t *testing.T) {
	testCases := []struct {
		name      string
		layout    string
		removed   int
		remaining int
	}{
		{
			name: "row bonus hits column bonus",
			layout: `
				R  G  B  Y
				R  B  G  G
				R- G  Y  B|`,
			removed:   8,
			remaining: 4,
		},
		{
			name: "two row bonuses in one row",
			layout: `
				R  G  B
				R  B  G
				R- Y  G-`,
			removed:   5,
			remaining: 4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := layout(t, tc.layout)
			events, err := match3.Resolve(g, match3.FindMatches(g))
			require.NoError(t, err)

			removals := eventsOfKind(events, match3.EventPieceRemoved)
			assert.Len(t, removals, tc.removed)
			assert.Equal(t, tc.remaining, g.FilledCount())

			seen := make(map[match3.Coord]bool)
			for _, e := range removals {
				assert.False(t, seen[e.Cell], "cell %v removed twice", e.Cell)
				seen[e.Cell] = true
			}
		})
	}
}

func TestResolveSkipsBonusMemberForPromotion(t *testing.T) {
	g := layout(t, `
		G  B  G  B
		R| R  R  R`)

	events, err := match3.Resolve(g, match3.FindMatches(g))
	require.NoError(t, err)

	promotions := eventsOfKind(events, match3.EventPiecePromoted)
	require.Len(t, promotions, 1)
	assert.Equal(t, match3.C(1, 0), promotions[0].Cell)
	assert.Equal(t, match3.KindRowBonus, promotions[0].Piece.Kind)

	assert.Equal(t, []match3.Coord{match3.C(0, 0), match3.C(2, 0), match3.C(3, 0), match3.C(0, 1)},
		cellsOf(eventsOfKind(events, match3.EventPieceRemoved)))
}

func TestResolvePromotedCellSurvivesBonusInSamePass(t *testing.T) {
	// The row bonus at (0,2) is a group member, so (1,2) is promoted and the
	// bonus then sweeps row 2 across it.
	g := layout(t, `
		R- R  R  R  G
		B  G  B  G  B
		G  B  G  B  G`)

	groups := match3.FindMatches(g)
	require.Len(t, groups, 1)
	require.Equal(t, 4, groups[0].Size())

	events, err := match3.Resolve(g, groups)
	require.NoError(t, err)

	promotions := eventsOfKind(events, match3.EventPiecePromoted)
	require.Len(t, promotions, 1)
	assert.Equal(t, match3.C(1, 2), promotions[0].Cell)

	p, ok := g.PieceAt(match3.C(1, 2))
	require.True(t, ok, "promoted piece must survive the row sweep")
	assert.Equal(t, match3.KindRowBonus, p.Kind)
	assert.False(t, g.At(match3.C(4, 2)).Filled)
}

func TestResolveEmptySeedIsConsistencyError(t *testing.T) {
	g := layout(t, `
		G B G
		B G B
		R . R`)

	group := match3.MatchGroup{
		Cells: []match3.Coord{match3.C(0, 0), match3.C(1, 0), match3.C(2, 0)},
		Type:  match3.TypeRed,
	}
	_, err := match3.Resolve(g, []match3.MatchGroup{group})
	assert.ErrorIs(t, err, match3.ErrInternalConsistency)
}
