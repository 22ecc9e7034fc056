package match3_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// layout parses a top-row-first layout or fails the test.
func layout(t *testing.T, text string) *match3.Grid {
	t.Helper()
	g, err := match3.ParseLayout(text)
	require.NoError(t, err)
	return g
}

// seqSpawner hands out pieces from a fixed list, cycling when exhausted.
type seqSpawner struct {
	pieces []match3.Piece
	next   int
}

func (s *seqSpawner) Spawn() match3.Piece {
	p := s.pieces[s.next%len(s.pieces)]
	s.next++
	return p
}

func spawnerOf(t *testing.T, tokens ...string) *seqSpawner {
	t.Helper()
	s := &seqSpawner{}
	for _, tok := range tokens {
		p, err := match3.ParsePiece(tok)
		require.NoError(t, err)
		s.pieces = append(s.pieces, p)
	}
	return s
}

func eventsOfKind(evs []match3.Event, k match3.EventKind) []match3.Event {
	var out []match3.Event
	for _, e := range evs {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

func cellsOf(evs []match3.Event) []match3.Coord {
	out := make([]match3.Coord, len(evs))
	for i, e := range evs {
		out[i] = e.Cell
	}
	return out
}

// runThrough reports whether c is part of a horizontal or vertical run of
// at least three pieces of its type.
func runThrough(g *match3.Grid, c match3.Coord) bool {
	p, ok := g.PieceAt(c)
	if !ok {
		return false
	}
	same := func(x, y int) bool {
		q, ok := g.PieceAt(match3.C(x, y))
		return ok && q.Type == p.Type
	}
	h := 1
	for x := c.X - 1; same(x, c.Y); x-- {
		h++
	}
	for x := c.X + 1; same(x, c.Y); x++ {
		h++
	}
	v := 1
	for y := c.Y - 1; same(c.X, y); y-- {
		v++
	}
	for y := c.Y + 1; same(c.X, y); y++ {
		v++
	}
	return h >= match3.MinRun || v >= match3.MinRun
}

// bruteForceHasMove tries every adjacent swap of differently typed pieces.
func bruteForceHasMove(g *match3.Grid) bool {
	for _, c := range g.AllCoords() {
		for _, d := range []match3.Dir{match3.DirRight, match3.DirUp} {
			n, ok := g.Neighbor(c, d)
			if !ok {
				continue
			}
			pc, okc := g.PieceAt(c)
			pn, okn := g.PieceAt(n)
			if !okc || !okn || pc.Type == pn.Type {
				continue
			}
			s := g.Clone()
			s.Cells[c.Y*s.W+c.X], s.Cells[n.Y*s.W+n.X] = s.Cells[n.Y*s.W+n.X], s.Cells[c.Y*s.W+c.X]
			if runThrough(s, c) || runThrough(s, n) {
				return true
			}
		}
	}
	return false
}
