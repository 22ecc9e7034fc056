package registry

func init() {
	Register(Variant{
		ID:          "classic",
		Title:       "Classic",
		Width:       8,
		Height:      8,
		Types:       6,
		Description: "8x8 board, six colours",
	})
	Register(Variant{
		ID:          "original",
		Title:       "Original",
		Width:       5,
		Height:      5,
		Types:       6,
		Description: "the small 5x5 board the game started with",
	})
	Register(Variant{
		ID:          "compact",
		Title:       "Compact",
		Width:       6,
		Height:      6,
		Types:       5,
		Description: "6x6 board, five colours",
	})
	Register(Variant{
		ID:          "relaxed",
		Title:       "Relaxed",
		Width:       7,
		Height:      7,
		Types:       4,
		Description: "7x7 board, four colours, long cascades",
	})
}
