// Package match3 implements the board state machine of a tile-matching
// puzzle: match detection, cascade resolution, gravity refill and
// deadlock/shuffle handling.
// This package is UI-agnostic and deterministic for a given seed.
package match3

import (
	"fmt"
	"strings"
)

// PieceType identifies the colour of a piece. Values index a fixed named
// palette; a board plays with a subset given at initialization.
type PieceType uint8

const (
	TypeRed PieceType = iota
	TypeGreen
	TypeBlue
	TypeYellow
	TypePurple
	TypeOrange
	TypeCyan
	TypeWhite
	TypeCount // Sentinel value for iteration
)

// String returns the name of the piece type.
func (t PieceType) String() string {
	switch t {
	case TypeRed:
		return "red"
	case TypeGreen:
		return "green"
	case TypeBlue:
		return "blue"
	case TypeYellow:
		return "yellow"
	case TypePurple:
		return "purple"
	case TypeOrange:
		return "orange"
	case TypeCyan:
		return "cyan"
	case TypeWhite:
		return "white"
	default:
		return fmt.Sprintf("type%d", uint8(t))
	}
}

// Char returns a single character representation for ASCII rendering.
func (t PieceType) Char() rune {
	switch t {
	case TypeRed:
		return 'R'
	case TypeGreen:
		return 'G'
	case TypeBlue:
		return 'B'
	case TypeYellow:
		return 'Y'
	case TypePurple:
		return 'P'
	case TypeOrange:
		return 'O'
	case TypeCyan:
		return 'C'
	case TypeWhite:
		return 'W'
	default:
		return '?'
	}
}

// ParsePieceType converts a name or single letter to a PieceType.
func ParsePieceType(s string) (PieceType, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return TypeRed, true
	case "green", "g":
		return TypeGreen, true
	case "blue", "b":
		return TypeBlue, true
	case "yellow", "y":
		return TypeYellow, true
	case "purple", "p":
		return TypePurple, true
	case "orange", "o":
		return TypeOrange, true
	case "cyan", "c":
		return TypeCyan, true
	case "white", "w":
		return TypeWhite, true
	default:
		return TypeRed, false
	}
}

// DefaultPalette returns the first n piece types. n is clamped to
// [1, TypeCount].
func DefaultPalette(n int) []PieceType {
	if n < 1 {
		n = 1
	}
	if n > int(TypeCount) {
		n = int(TypeCount)
	}
	palette := make([]PieceType, n)
	for i := range palette {
		palette[i] = PieceType(i)
	}
	return palette
}

// Kind distinguishes normal pieces from bonus pieces.
type Kind uint8

const (
	KindNormal   Kind = iota
	KindRowBonus      // Clears its whole row when it explodes
	KindColBonus      // Clears its whole column when it explodes
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindRowBonus:
		return "row-bonus"
	case KindColBonus:
		return "col-bonus"
	default:
		return "unknown"
	}
}

// IsBonus reports whether the kind chain-reacts on explosion.
func (k Kind) IsBonus() bool {
	return k == KindRowBonus || k == KindColBonus
}

// Piece is a typed piece held by exactly one cell.
type Piece struct {
	Type PieceType
	Kind Kind
}

// NewPiece returns a normal piece of the given type.
func NewPiece(t PieceType) Piece {
	return Piece{Type: t, Kind: KindNormal}
}

// Matches reports whether two pieces share a type. Kind is ignored.
func (p Piece) Matches(other Piece) bool {
	return p.Type == other.Type
}

// Promote upgrades a normal piece to a bonus kind.
// Returns false if the piece is already a bonus or k is not a bonus kind.
func (p *Piece) Promote(k Kind) bool {
	if p.Kind != KindNormal || !k.IsBonus() {
		return false
	}
	p.Kind = k
	return true
}

// String returns a compact representation, e.g. "R", "R-" or "R|".
func (p Piece) String() string {
	switch p.Kind {
	case KindRowBonus:
		return string(p.Type.Char()) + "-"
	case KindColBonus:
		return string(p.Type.Char()) + "|"
	default:
		return string(p.Type.Char())
	}
}

// Cell is a single addressable slot of the grid.
type Cell struct {
	Filled bool  // Whether the cell holds a piece
	Piece  Piece // Valid only when Filled is true
}

// EmptyCell returns an empty cell.
func EmptyCell() Cell {
	return Cell{}
}

// FilledCell returns a cell holding p.
func FilledCell(p Piece) Cell {
	return Cell{Filled: true, Piece: p}
}

// Axis is the orientation of a run.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// BonusKind returns the bonus a group along this axis promotes to.
func (a Axis) BonusKind() Kind {
	if a == AxisVertical {
		return KindColBonus
	}
	return KindRowBonus
}
