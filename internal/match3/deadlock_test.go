package match3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

func TestFindMovePatterns(t *testing.T) {
	testCases := []struct {
		name     string
		layout   string
		expected match3.Move
		ok       bool
	}{
		{
			name: "deadlocked checker",
			layout: `
				R G B Y
				B Y R G
				R G B Y
				B Y R G`,
			ok: false,
		},
		{
			name: "pair in line beyond neighbour",
			layout: `
				G B G B
				B G B G
				R G R R`,
			expected: match3.Move{A: match3.C(0, 0), B: match3.C(1, 0)},
			ok:       true,
		},
		{
			name: "gap flanked across the swap axis",
			layout: `
				B R B
				G B G
				B R B`,
			expected: match3.Move{A: match3.C(1, 1), B: match3.C(1, 2)},
			ok:       true,
		},
		{
			name: "L-shaped pair",
			layout: `
				G B G
				B R R
				R B G`,
			expected: match3.Move{A: match3.C(0, 0), B: match3.C(0, 1)},
			ok:       true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := layout(t, tc.layout)
			move, ok := match3.FindMove(g)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.ok, match3.HasAvailableMove(g))
			assert.Equal(t, bruteForceHasMove(g), ok)
			if tc.ok {
				assert.Equal(t, tc.expected, move)
			}
		})
	}
}

func TestFindMoveIsProductive(t *testing.T) {
	rng := match3.NewRNG(99)
	f := match3.NewFactory(match3.DefaultPalette(4), rng)

	for i := 0; i < 500; i++ {
		g := match3.NewGrid(5, 5)
		for _, c := range g.AllCoords() {
			require.NoError(t, g.Place(c, f.Spawn()))
		}
		for _, m := range match3.AllMoves(g) {
			s := g.Clone()
			a, b := s.At(m.A), s.At(m.B)
			s.Cells[m.A.Y*s.W+m.A.X], s.Cells[m.B.Y*s.W+m.B.X] = b, a
			require.True(t, runThrough(s, m.A) || runThrough(s, m.B), "move %v is not productive", m)
		}
	}
}

// boardFromIndex fills g with the base-k digits of n in row-major order.
func boardFromIndex(g *match3.Grid, n, k int) {
	for i := range g.Cells {
		g.Cells[i] = match3.FilledCell(match3.NewPiece(match3.PieceType(n % k)))
		n /= k
	}
}

func TestDeadlockSoundnessExhaustive4x4TwoTypes(t *testing.T) {
	g := match3.NewGrid(4, 4)
	total := 1 << 16
	for n := 0; n < total; n++ {
		boardFromIndex(g, n, 2)
		if got, want := match3.HasAvailableMove(g), bruteForceHasMove(g); got != want {
			t.Fatalf("board %d: checker=%v brute=%v\n%s", n, got, want, match3.RenderASCII(g))
		}
	}
}

func TestDeadlockSoundnessExhaustive3x4ThreeTypes(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive sweep")
	}
	g := match3.NewGrid(3, 4)
	total := 1
	for range g.Cells {
		total *= 3
	}
	for n := 0; n < total; n++ {
		boardFromIndex(g, n, 3)
		if got, want := match3.HasAvailableMove(g), bruteForceHasMove(g); got != want {
			t.Fatalf("board %d: checker=%v brute=%v\n%s", n, got, want, match3.RenderASCII(g))
		}
	}
}

func TestDeadlockSoundnessRandom4x4ThreeTypes(t *testing.T) {
	rng := match3.NewRNG(2024)
	g := match3.NewGrid(4, 4)
	for i := 0; i < 50000; i++ {
		for j := range g.Cells {
			g.Cells[j] = match3.FilledCell(match3.NewPiece(match3.PieceType(rng.Intn(3))))
		}
		if got, want := match3.HasAvailableMove(g), bruteForceHasMove(g); got != want {
			t.Fatalf("checker=%v brute=%v\n%s", got, want, match3.RenderASCII(g))
		}
	}
}
