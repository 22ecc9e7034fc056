package match3

// DefaultResampleLimit bounds SpawnAvoiding before it falls back to Spawn.
const DefaultResampleLimit = 16

// Spawner produces new pieces for refills.
type Spawner interface {
	Spawn() Piece
}

// Factory produces uniformly random normal pieces from a palette.
type Factory struct {
	Palette       []PieceType
	RNG           *RNG
	ResampleLimit int
}

// NewFactory creates a factory drawing from rng.
func NewFactory(palette []PieceType, rng *RNG) *Factory {
	return &Factory{
		Palette:       palette,
		RNG:           rng,
		ResampleLimit: DefaultResampleLimit,
	}
}

// Spawn returns a normal piece of a uniformly random palette type.
func (f *Factory) Spawn() Piece {
	if len(f.Palette) == 0 {
		return NewPiece(TypeRed)
	}
	return NewPiece(f.Palette[f.RNG.Intn(len(f.Palette))])
}

// SpawnAvoiding returns a piece for c that does not complete a run with
// the two cells to its left or the two cells below it. After ResampleLimit
// rejected draws it returns an unconstrained piece.
func (f *Factory) SpawnAvoiding(g *Grid, c Coord) Piece {
	limit := f.ResampleLimit
	if limit <= 0 {
		limit = DefaultResampleLimit
	}
	for i := 0; i < limit; i++ {
		p := f.Spawn()
		if !completesRun(g, c, p.Type) {
			return p
		}
	}
	return f.Spawn()
}

// completesRun reports whether type t at c would extend the two cells to
// the left or the two cells below into a run of three.
func completesRun(g *Grid, c Coord, t PieceType) bool {
	if g.sameType(c.Add(-1, 0), t) && g.sameType(c.Add(-2, 0), t) {
		return true
	}
	return g.sameType(c.Add(0, -1), t) && g.sameType(c.Add(0, -2), t)
}
