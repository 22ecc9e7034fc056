package match3

import "fmt"

// Coord addresses a cell. X increases to the right; Y = 0 is the bottom row
// and Y increases upward, so gravity pulls toward Y = 0.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the coordinate n steps away in direction d.
func (c Coord) Step(d Dir, n int) Coord {
	dx, dy := d.Delta()
	return c.Add(dx*n, dy*n)
}

// Adjacent reports whether two coordinates are 4-neighbours.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Less orders coordinates row-major: bottom row first, then left to right.
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Dir is one of the four swap directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists the four directions in a fixed order.
var Dirs = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step. Up increases Y.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Perpendicular returns a direction at right angles to d.
func (d Dir) Perpendicular() Dir {
	switch d {
	case DirUp, DirDown:
		return DirRight
	default:
		return DirUp
	}
}

// Move is a swap of two adjacent cells.
type Move struct {
	A Coord
	B Coord
}

// String returns a readable representation of the move.
func (m Move) String() string {
	return fmt.Sprintf("%v<->%v", m.A, m.B)
}
