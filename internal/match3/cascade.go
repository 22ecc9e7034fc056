package match3

// Resolve removes the pieces of the given groups and promotes one member of
// every group larger than MinRun. Bonus pieces hit by the removal explode
// their whole row or column, which may chain into further bonuses.
//
// Promotions are emitted in the first batch and all removals in the next.
func Resolve(g *Grid, groups []MatchGroup) ([]Event, error) {
	var events []Event
	protected := make([]bool, len(g.Cells))
	var worklist []Coord

	for _, grp := range groups {
		promote := -1
		if grp.Size() > MinRun {
			for i, c := range grp.Cells {
				if p, ok := g.PieceAt(c); ok && p.Kind == KindNormal {
					promote = i
					break
				}
			}
		}
		for i, c := range grp.Cells {
			if i != promote {
				worklist = append(worklist, c)
				continue
			}
			idx := g.index(c)
			g.Cells[idx].Piece.Promote(grp.Axis.BonusKind())
			protected[idx] = true
			events = append(events, promoted(0, c, g.Cells[idx].Piece))
		}
	}

	removeBatch := 0
	if len(events) > 0 {
		removeBatch = 1
	}

	exploding := make([]bool, len(g.Cells))
	for len(worklist) > 0 {
		c := worklist[0]
		worklist = worklist[1:]

		idx := g.index(c)
		if exploding[idx] || protected[idx] {
			continue
		}
		exploding[idx] = true

		p, err := g.Take(c)
		if err != nil {
			return nil, err
		}
		switch p.Kind {
		case KindRowBonus:
			worklist = appendFilled(g, worklist, rowCoords(g, c.Y))
		case KindColBonus:
			worklist = appendFilled(g, worklist, colCoords(g, c.X))
		}
		events = append(events, removed(removeBatch, c, p))
	}
	return events, nil
}

func appendFilled(g *Grid, dst []Coord, cells []Coord) []Coord {
	for _, c := range cells {
		if g.At(c).Filled {
			dst = append(dst, c)
		}
	}
	return dst
}

func rowCoords(g *Grid, y int) []Coord {
	out := make([]Coord, g.W)
	for x := range out {
		out[x] = C(x, y)
	}
	return out
}

func colCoords(g *Grid, x int) []Coord {
	out := make([]Coord, g.H)
	for y := range out {
		out[y] = C(x, y)
	}
	return out
}
