package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <board>",
	Short: "Play a board",
	Long: `Start playing a variant, a preset layout or the board from the config.

Controls:
  Arrows/hjkl/wasd - Move cursor
  Enter/Space      - Select piece, then its neighbour to swap
  X                - Drop selection
  ?                - Show a hint
  R                - New board
  Tab              - Toggle full help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 4 colours, slow playback
  normal - 5 colours
  hard   - 6 colours, fast playback
  fixed  - Keep the board as configured

Examples:
  match3 play classic
  match3 play compact --difficulty easy
  match3 play five-bonus
  match3 play custom --config ./my-board.yaml
  match3 play original --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	s := mustLoadSettings()
	defer s.close()

	setup, err := s.resolveSetup(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'match3 variants' or 'match3 levels' to see available boards.")
		os.Exit(1)
	}

	// Open session storage
	store := openStore()

	runErr := tui.Run(setup, s.runtime(), s.gameOptions(store))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running board: %v\n", runErr)
		os.Exit(1)
	}
}
