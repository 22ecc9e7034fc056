package match3

import (
	"fmt"
	"strings"
)

// RenderASCII renders the grid top row first. Each cell is a two-character
// token separated by a space: "R " normal, "R-" row bonus, "R|" column bonus,
// ". " empty.
func RenderASCII(g *Grid) string {
	var sb strings.Builder
	for y := g.H - 1; y >= 0; y-- {
		var row strings.Builder
		for x := 0; x < g.W; x++ {
			if x > 0 {
				row.WriteByte(' ')
			}
			cell := g.At(C(x, y))
			tok := "."
			if cell.Filled {
				tok = cell.Piece.String()
			}
			fmt.Fprintf(&row, "%-2s", tok)
		}
		sb.WriteString(strings.TrimRight(row.String(), " "))
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseLayout builds a grid from rows listed top row first. Tokens are
// whitespace separated: a colour letter with an optional "-" (row bonus) or
// "|" (column bonus) suffix, or "." for an empty cell. Blank lines are
// ignored.
func ParseLayout(text string) (*Grid, error) {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			rows = append(rows, fields)
		}
	}
	return ParseRows(rows)
}

// ParseRows builds a grid from pre-split token rows, top row first.
func ParseRows(rows [][]string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: layout has no rows", ErrInvalidConfig)
	}
	w := len(rows[0])
	h := len(rows)
	g := NewGrid(w, h)
	for i, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfig, i, len(row), w)
		}
		y := h - 1 - i
		for x, tok := range row {
			if tok == "." {
				continue
			}
			p, err := ParsePiece(tok)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", i, x, err)
			}
			g.set(C(x, y), FilledCell(p))
		}
	}
	return g, nil
}

// ParsePiece converts a layout token such as "R", "g-" or "B|" to a piece.
func ParsePiece(tok string) (Piece, error) {
	kind := KindNormal
	switch {
	case strings.HasSuffix(tok, "-"):
		kind = KindRowBonus
		tok = strings.TrimSuffix(tok, "-")
	case strings.HasSuffix(tok, "|"):
		kind = KindColBonus
		tok = strings.TrimSuffix(tok, "|")
	}
	t, ok := ParsePieceType(tok)
	if !ok {
		return Piece{}, fmt.Errorf("%w: unknown piece %q", ErrInvalidConfig, tok)
	}
	return Piece{Type: t, Kind: kind}, nil
}
