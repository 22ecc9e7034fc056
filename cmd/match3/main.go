// match3 is a terminal match-3 puzzle built around a deterministic board
// state machine.
//
// Usage:
//
//	match3 variants            - List board variants
//	match3 levels              - List preset layouts
//	match3 play <board>        - Play a variant, a preset or "custom"
//	match3 menu                - Pick boards interactively
//	match3 sim [board]         - Let the hint engine play headless
//	match3 serve               - Start SSH server for remote play
//	match3 sessions            - Show recorded sessions
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.match3/sessions.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       uint64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap pieces and clear lines in your terminal",
	Long: `Match-3 is a terminal tile-matching puzzle. Swap two neighbouring
pieces to line up three or more of a colour; runs of five leave a bonus
piece behind that clears its whole row or column.

Available commands:
  variants - Show the board variants
  levels   - Show the preset layouts
  play     - Play a board directly
  menu     - Interactive board picker
  sim      - Headless autoplayer
  serve    - Start SSH server for remote play
  sessions - View recorded sessions

Examples:
  match3 variants
  match3 play classic
  match3 play five-bonus
  match3 menu --difficulty easy
  match3 sim original --moves 50 --seed 42
  match3 serve --ssh :2222
  match3 sessions classic`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/sessions.db", "Path to session database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of preset layouts (default: built-in presets)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs of the board to this file")

	// Add subcommands
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
}
