package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a board picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a board.
After a board ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select board
  Tab          - Session history
  Q/Esc        - Quit

Examples:
  match3 menu
  match3 menu --difficulty hard
  match3 menu --db ./sessions.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	s := mustLoadSettings()
	defer s.close()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := s.runtime()
	items := s.menuItems()
	opts := s.gameOptions(store)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(items, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsSessions {
			goBack, histErr := tui.RunSessions(store, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.Setup == nil {
			return
		}

		if err := tui.Run(*menuResult.Setup, cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running board: %v\n", err)
		}

		// Fresh boards after the first one
		cfg.Seed = 0
	}
}
