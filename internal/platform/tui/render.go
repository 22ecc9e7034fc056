package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
}

func cellStyle(c core.Cell) lipgloss.Style {
	style, ok := colorStyles[c.Color]
	if !ok {
		style = colorStyles[core.ColorDefault]
	}
	if c.Reverse {
		style = style.Reverse(true)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Reverse != start.Reverse {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(cellStyle(start).Render(run.String()))
		}
	}
	return sb.String()
}

// pieceColor returns the screen color of a piece type.
func pieceColor(t match3.PieceType) core.Color {
	switch t {
	case match3.TypeRed:
		return core.ColorRed
	case match3.TypeGreen:
		return core.ColorGreen
	case match3.TypeBlue:
		return core.ColorBlue
	case match3.TypeYellow:
		return core.ColorYellow
	case match3.TypePurple:
		return core.ColorMagenta
	case match3.TypeOrange:
		return core.ColorOrange
	case match3.TypeCyan:
		return core.ColorCyan
	case match3.TypeWhite:
		return core.ColorBrightWhite
	default:
		return core.ColorDefault
	}
}

// pieceGlyph returns the rune a piece is drawn with.
func pieceGlyph(p match3.Piece) rune {
	switch p.Kind {
	case match3.KindRowBonus:
		return '↔'
	case match3.KindColBonus:
		return '↕'
	default:
		return '●'
	}
}

// cellWidth is the number of screen columns a board cell takes.
const cellWidth = 3

// boardOverlay holds the interaction markers drawn over a board.
type boardOverlay struct {
	cursor     match3.Coord
	showCursor bool
	selected   *match3.Coord
	hint       *match3.Move
}

// boardFrame returns the rectangle of a w x h board including its border.
func boardFrame(w, h int) core.Rect {
	return core.NewRect(0, 0, w*cellWidth+2, h+2)
}

// cellOrigin returns the screen position of the left column of cell c.
// Row 0 of the board is drawn at the bottom of the frame.
func cellOrigin(frame core.Rect, g *match3.Grid, c match3.Coord) (int, int) {
	inner := frame.Inset(1)
	return inner.X + c.X*cellWidth, inner.Y + (g.H - 1 - c.Y)
}

// drawBoard draws g inside frame, which must be boardFrame-sized.
func drawBoard(s *core.Screen, g *match3.Grid, frame core.Rect, ov boardOverlay) {
	s.DrawBox(frame, core.ColorGray)

	for _, c := range g.AllCoords() {
		sx, sy := cellOrigin(frame, g, c)

		cell := g.At(c)
		glyph := core.Cell{Rune: '·', Color: core.ColorGray}
		if cell.Filled {
			glyph = core.Cell{Rune: pieceGlyph(cell.Piece), Color: pieceColor(cell.Piece.Type)}
		}
		if ov.selected != nil && *ov.selected == c {
			glyph.Reverse = true
		}

		left, right := core.Blank, core.Blank
		switch {
		case ov.showCursor && ov.cursor == c:
			left = core.Cell{Rune: '[', Color: core.ColorBrightWhite}
			right = core.Cell{Rune: ']', Color: core.ColorBrightWhite}
		case ov.hint != nil && (ov.hint.A == c || ov.hint.B == c):
			left = core.Cell{Rune: '(', Color: core.ColorYellow}
			right = core.Cell{Rune: ')', Color: core.ColorYellow}
		}

		s.SetCell(sx, sy, left)
		s.SetCell(sx+1, sy, glyph)
		s.SetCell(sx+2, sy, right)
	}
}
