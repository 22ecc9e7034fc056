package match3

// ApplyEvents replays an event stream onto g batch by batch.
// Within a batch every removed or moved piece is lifted before any piece is
// placed, so swaps and permutations replay correctly.
func ApplyEvents(g *Grid, events []Event) error {
	for _, batch := range SplitBatches(events) {
		if err := applyBatch(g, batch); err != nil {
			return err
		}
	}
	return nil
}

func applyBatch(g *Grid, batch []Event) error {
	lifted := make([]Piece, len(batch))
	for i, e := range batch {
		switch e.Kind {
		case EventPieceRemoved:
			if _, err := g.Take(e.Cell); err != nil {
				return err
			}
		case EventPieceMoved:
			p, err := g.Take(e.From)
			if err != nil {
				return err
			}
			lifted[i] = p
		case EventPiecePromoted:
			if !g.At(e.Cell).Filled {
				return consistencyErr("promote", e.Cell, "cell is empty")
			}
			g.set(e.Cell, FilledCell(e.Piece))
		}
	}
	for i, e := range batch {
		switch e.Kind {
		case EventPieceCreated:
			if err := g.Place(e.Cell, e.Piece); err != nil {
				return err
			}
		case EventPieceMoved:
			if err := g.Place(e.Cell, lifted[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
