package match3

// DefaultMaxShuffleAttempts bounds Shuffle when no explicit limit is given.
const DefaultMaxShuffleAttempts = 100

// Shuffle redistributes the pieces on g with a uniform random permutation
// until the result has no match and at least one productive move.
//
// Only the accepted permutation is applied: one PieceMoved per relocated
// piece in a single batch, then Shuffled. When maxAttempts are exhausted g is
// left untouched and the result is an Unshuffleable event together with
// ErrUnshuffleable.
func Shuffle(g *Grid, rng *RNG, maxAttempts int) ([]Event, error) {
	coords := g.FilledCoords()
	pieces := make([]Piece, len(coords))
	for i, c := range coords {
		pieces[i], _ = g.PieceAt(c)
	}

	perm := make([]int, len(coords))
	for attempt := 0; attempt < maxAttempts; attempt++ {
		for i := range perm {
			perm[i] = i
		}
		rng.Shuffle(len(perm), func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})

		scratch := g.Clone()
		for i, c := range coords {
			scratch.set(c, FilledCell(pieces[perm[i]]))
		}
		if len(FindMatches(scratch)) > 0 || !HasAvailableMove(scratch) {
			continue
		}

		var events []Event
		for i, c := range coords {
			if perm[i] != i {
				events = append(events, moved(0, coords[perm[i]], c, pieces[perm[i]]))
			}
		}
		copy(g.Cells, scratch.Cells)
		events = append(events, marker(nextBatch(events), EventShuffled))
		return events, nil
	}
	return []Event{marker(0, EventUnshuffleable)}, ErrUnshuffleable
}
