package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for pieces and board chrome.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorBrightWhite
)

// Cell is one character of a Screen with its styling.
type Cell struct {
	Rune    rune
	Color   Color
	Reverse bool // Swap foreground and background (cursor, selection)
}

// Blank is the cell a cleared screen is filled with.
var Blank = Cell{Rune: ' '}
