package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagSessionsLimit int
	flagSessionsClear bool
	flagSessionID     int64
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [board]",
	Short: "Show recorded sessions",
	Long: `Display the most recent sessions and per-board totals.

Only session telemetry is stored (seed, size, swaps, cascade cycles,
shuffles and outcome), never the board itself. Replaying a board with
its seed reproduces it.

Examples:
  match3 sessions
  match3 sessions classic --limit 20
  match3 sessions --id 12
  match3 sessions five-bonus --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 10, "Number of sessions to show")
	sessionsCmd.Flags().Int64Var(&flagSessionID, "id", 0, "Show the details of one session")
	sessionsCmd.Flags().BoolVar(&flagSessionsClear, "clear", false, "Delete the recorded sessions instead of listing them")
}

func runSessions(_ *cobra.Command, args []string) {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagSessionsClear {
		if err := store.ClearSessions(variant); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Sessions cleared.")
		return
	}

	if flagSessionID > 0 {
		showSession(store, flagSessionID)
		return
	}

	sessions, err := store.RecentSessions(variant, flagSessionsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	title := "all boards"
	if variant != "" {
		title = variant
	}
	fmt.Printf("Recent sessions - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'match3 play classic' or run 'match3 sim' to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-20s  %-5s  %-7s  %-6s  %-14s  %s\n",
		"ID", "Board", "Seed", "Swaps", "Removed", "Chains", "Outcome", "Date")

	for _, s := range sessions {
		fmt.Printf("  %-4d  %-12s  %-20d  %-5d  %-7d  %-6d  %-14s  %s\n",
			s.ID, s.Variant, s.Seed, s.Swaps, s.Stats.Removed, s.Stats.Cycles,
			s.Outcome, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.StatsByVariant()
	if err != nil {
		return
	}
	ids := make([]string, 0, len(stats))
	for id := range stats {
		if variant == "" || id == variant {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Println("Totals:")
	for _, id := range ids {
		vs := stats[id]
		fmt.Printf("  %-12s  %d sessions, %d swaps, %d removed, best %d, longest chain %d, %d unshuffleable\n",
			id, vs.Sessions, vs.TotalSwaps, vs.TotalRemoved, vs.BestRemoved, vs.MaxCycles, vs.Unshuffleable)
	}
}

// showSession prints one session and how to replay it.
func showSession(store *storage.Store, id int64) {
	s, err := store.SessionByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Session %d - %s\n\n", s.ID, s.Variant)
	fmt.Printf("  board     %dx%d, %d colours\n", s.Width, s.Height, s.Types)
	fmt.Printf("  seed      %d\n", s.Seed)
	fmt.Printf("  swaps     %d (%d reverted)\n", s.Swaps, s.Reverts)
	fmt.Printf("  removed   %d\n", s.Stats.Removed)
	fmt.Printf("  created   %d\n", s.Stats.Created)
	fmt.Printf("  bonuses   %d\n", s.Stats.Promoted)
	fmt.Printf("  cycles    %d\n", s.Stats.Cycles)
	fmt.Printf("  shuffles  %d\n", s.Stats.Shuffles)
	fmt.Printf("  outcome   %s\n", s.Outcome)
	fmt.Printf("  duration  %s\n", s.Duration.Round(time.Second))
	fmt.Printf("  played    %s\n", s.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println()
	fmt.Printf("Replay with: match3 play %s --seed %d\n", s.Variant, s.Seed)
}
