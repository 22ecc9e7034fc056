package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List all board variants",
	Long:  `Shows the board variants that start from a random, match-free board.`,
	Run:   runVariants,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List preset layouts",
	Long: `Shows the preset layouts. Presets start from a fixed board and are
read from --levels when given, otherwise from the built-in set.`,
	Run: runLevels,
}

func runVariants(_ *cobra.Command, _ []string) {
	infos := registry.List()

	if len(infos) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, info := range infos {
		if len(info.ID) > maxIDLen {
			maxIDLen = len(info.ID)
		}
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Board")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, info := range infos {
		v, err := registry.Get(info.ID)
		if err != nil {
			continue
		}
		fmt.Printf("  %-*s  %-10s  %dx%d, %d colours\n", maxIDLen, v.ID, v.Title, v.Width, v.Height, v.Types)
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id>' to play a variant.")
}

func runLevels(_ *cobra.Command, _ []string) {
	presets, err := presetLoader().LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading presets: %v\n", err)
		os.Exit(1)
	}

	if len(presets) == 0 {
		fmt.Println("No presets available.")
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()

	maxIDLen := 2
	for _, p := range presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "ID", "Name", "Board")
	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "--", "----", "-----")

	for _, p := range presets {
		fmt.Printf("  %-*s  %-20s  %dx%d, %d colours\n", maxIDLen, p.ID, p.Name, p.Width, p.Height, len(p.Palette))
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id>' to play a preset.")
}
