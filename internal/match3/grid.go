package match3

// Grid is the fixed-size store of cells. It owns piece lifetime but knows
// nothing about matching.
// Cells are stored in row-major order: index = y*W + x, with y = 0 at the
// bottom.
type Grid struct {
	W     int    // Width of the grid
	H     int    // Height of the grid
	Cells []Cell // Flat array of cells, length W*H
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// coord converts a flat array index back to a coordinate.
func (g *Grid) coord(i int) Coord {
	return C(i%g.W, i/g.W)
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the cell at the given coordinate.
// Returns an empty cell if out of bounds.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return EmptyCell()
	}
	return g.Cells[g.index(c)]
}

// PieceAt returns the piece at c and whether the cell is filled.
func (g *Grid) PieceAt(c Coord) (Piece, bool) {
	cell := g.At(c)
	return cell.Piece, cell.Filled
}

// Place puts p into the empty cell at c.
func (g *Grid) Place(c Coord, p Piece) error {
	if !g.InBounds(c) {
		return consistencyErr("place", c, "out of range")
	}
	i := g.index(c)
	if g.Cells[i].Filled {
		return consistencyErr("place", c, "cell already holds %v", g.Cells[i].Piece)
	}
	g.Cells[i] = FilledCell(p)
	return nil
}

// Take removes and returns the piece at c.
func (g *Grid) Take(c Coord) (Piece, error) {
	if !g.InBounds(c) {
		return Piece{}, consistencyErr("take", c, "out of range")
	}
	i := g.index(c)
	if !g.Cells[i].Filled {
		return Piece{}, consistencyErr("take", c, "cell is empty")
	}
	p := g.Cells[i].Piece
	g.Cells[i] = EmptyCell()
	return p, nil
}

// set overwrites the cell at c without ownership checks.
func (g *Grid) set(c Coord, cell Cell) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = cell
	}
}

// Neighbor returns the coordinate one step from c in direction d.
// ok is false at the edge of the grid.
func (g *Grid) Neighbor(c Coord, d Dir) (Coord, bool) {
	n := c.Step(d, 1)
	return n, g.InBounds(n)
}

// Neighbors returns the in-bounds 4-neighbours of c in Up, Right, Down,
// Left order.
func (g *Grid) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range Dirs {
		if n, ok := g.Neighbor(c, d); ok {
			out = append(out, n)
		}
	}
	return out
}

// sameType reports whether c holds a piece of type t.
func (g *Grid) sameType(c Coord, t PieceType) bool {
	p, ok := g.PieceAt(c)
	return ok && p.Type == t
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// FilledCount returns the number of filled cells in the grid.
func (g *Grid) FilledCount() int {
	count := 0
	for _, cell := range g.Cells {
		if cell.Filled {
			count++
		}
	}
	return count
}

// IsFull returns true if every cell holds a piece.
func (g *Grid) IsFull() bool {
	return g.FilledCount() == len(g.Cells)
}

// AllCoords returns all coordinates in row-major order.
func (g *Grid) AllCoords() []Coord {
	coords := make([]Coord, 0, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

// FilledCoords returns all coordinates holding a piece, row-major.
func (g *Grid) FilledCoords() []Coord {
	coords := make([]Coord, 0, len(g.Cells))
	for i, cell := range g.Cells {
		if cell.Filled {
			coords = append(coords, g.coord(i))
		}
	}
	return coords
}

// CountByType returns how many pieces of each type are on the grid.
func (g *Grid) CountByType() map[PieceType]int {
	counts := make(map[PieceType]int)
	for _, cell := range g.Cells {
		if cell.Filled {
			counts[cell.Piece.Type]++
		}
	}
	return counts
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}
