package match3

// HasAvailableMove reports whether some adjacent swap would create a match.
func HasAvailableMove(g *Grid) bool {
	_, ok := FindMove(g)
	return ok
}

// FindMove returns the first productive swap in row-major order of its
// anchor cell.
//
// For an anchor c and a direction d with neighbour n = c+d of a different
// type, moving c's piece into n completes a run when one of four windows
// around n already holds c's type: (n+d, n+2d), (n-p, n+p), (n+p, n+2p) or
// (n-p, n-2p), with p perpendicular to d. The reverse exchange is covered
// when n is the anchor.
func FindMove(g *Grid) (Move, bool) {
	for _, c := range g.AllCoords() {
		p, ok := g.PieceAt(c)
		if !ok {
			continue
		}
		for _, d := range Dirs {
			n, ok := g.Neighbor(c, d)
			if !ok {
				continue
			}
			np, ok := g.PieceAt(n)
			if !ok || np.Type == p.Type {
				continue
			}
			if completesAt(g, n, d, p.Type) {
				return Move{A: c, B: n}, true
			}
		}
	}
	return Move{}, false
}

// completesAt checks the four windows around n for a pair of type t.
func completesAt(g *Grid, n Coord, d Dir, t PieceType) bool {
	p := d.Perpendicular()
	windows := [4][2]Coord{
		{n.Step(d, 1), n.Step(d, 2)},
		{n.Step(p, -1), n.Step(p, 1)},
		{n.Step(p, 1), n.Step(p, 2)},
		{n.Step(p, -1), n.Step(p, -2)},
	}
	for _, w := range windows {
		if g.sameType(w[0], t) && g.sameType(w[1], t) {
			return true
		}
	}
	return false
}

// AllMoves returns every productive swap, each pair reported once with the
// row-major-smaller cell as A.
func AllMoves(g *Grid) []Move {
	seen := make(map[Move]bool)
	var moves []Move
	for _, c := range g.AllCoords() {
		p, ok := g.PieceAt(c)
		if !ok {
			continue
		}
		for _, d := range Dirs {
			n, ok := g.Neighbor(c, d)
			if !ok {
				continue
			}
			np, ok := g.PieceAt(n)
			if !ok || np.Type == p.Type || !completesAt(g, n, d, p.Type) {
				continue
			}
			m := Move{A: c, B: n}
			if n.Less(c) {
				m = Move{A: n, B: c}
			}
			if !seen[m] {
				seen[m] = true
				moves = append(moves, m)
			}
		}
	}
	return moves
}
