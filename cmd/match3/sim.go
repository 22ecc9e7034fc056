package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagSimMoves  int
	flagSimRecord bool
	flagSimQuiet  bool
)

var simCmd = &cobra.Command{
	Use:   "sim [board]",
	Short: "Let the hint engine play a board headless",
	Long: `Play a board without a terminal UI. Every move is the first productive
swap the hint engine finds; each move logs its cascade cycles, removals,
bonuses and shuffles. The final board and totals are printed at the end.

The same seed always plays the same game.

Examples:
  match3 sim
  match3 sim classic --moves 200 --seed 42
  match3 sim deadlock --moves 5
  match3 sim compact --record=false`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 100, "Number of swaps to play")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", true, "Record the run in the session database")
	simCmd.Flags().BoolVarP(&flagSimQuiet, "quiet", "q", false, "Only print the final board and totals")
}

// simReport is the outcome of a headless run.
type simReport struct {
	Setup   tui.Setup
	Seed    uint64
	Board   *match3.Board
	Swaps   int
	Reverts int
	Stats   match3.Stats
	Outcome storage.Outcome
	Elapsed time.Duration
}

// Session converts the report into a storable session.
func (r simReport) Session() storage.Session {
	return storage.Session{
		Variant:  r.Setup.ID,
		Seed:     r.Seed,
		Width:    r.Setup.Width,
		Height:   r.Setup.Height,
		Types:    len(r.Setup.Palette),
		Swaps:    r.Swaps,
		Reverts:  r.Reverts,
		Stats:    r.Stats,
		Outcome:  r.Outcome,
		Duration: r.Elapsed,
	}
}

// simulate plays up to moves hinted swaps on a fresh board.
func simulate(setup tui.Setup, seed uint64, moves int, logger *log.Logger, opts ...match3.Option) (simReport, error) {
	started := time.Now()
	report := simReport{Setup: setup, Seed: seed, Outcome: storage.OutcomeMoveLimit}

	b := match3.NewBoard(opts...)
	report.Board = b

	res, err := setup.Start(b, seed)
	report.Stats = match3.Tally(res.Events)
	b.Acknowledge()
	switch {
	case errors.Is(err, match3.ErrUnshuffleable):
		logger.Warn("board starts without moves", "seed", seed)
		report.Outcome = storage.OutcomeUnshuffleable
		report.Elapsed = time.Since(started)
		return report, nil
	case err != nil:
		report.Outcome = storage.OutcomeError
		report.Elapsed = time.Since(started)
		return report, fmt.Errorf("cannot start board: %w", err)
	}
	logger.Info("board ready", "board", setup.ID, "seed", seed, "cycles", res.Cycles, "shuffles", report.Stats.Shuffles)

	for n := 1; n <= moves; n++ {
		mv, ok := b.Hint()
		if !ok {
			// A settled board always has a move unless it is unshuffleable.
			report.Outcome = storage.OutcomeError
			report.Elapsed = time.Since(started)
			return report, fmt.Errorf("move %d: no hint on a settled board: %w", n, match3.ErrInternalConsistency)
		}

		sw, err := b.RequestSwap(mv.A, mv.B)
		stats := match3.Tally(sw.Events)
		report.Stats.Add(stats)
		b.Acknowledge()

		switch {
		case errors.Is(err, match3.ErrUnshuffleable):
			report.Swaps++
			logger.Warn("no moves left and shuffling failed", "move", n)
			report.Outcome = storage.OutcomeUnshuffleable
			report.Elapsed = time.Since(started)
			return report, nil
		case err != nil:
			report.Outcome = storage.OutcomeError
			report.Elapsed = time.Since(started)
			return report, fmt.Errorf("move %d %v: %w", n, mv, err)
		case sw.Reverted:
			report.Reverts++
			logger.Warn("hinted swap reverted", "move", n, "swap", mv)
			continue
		}

		report.Swaps++
		logger.Info("cycle summary",
			"move", n,
			"swap", mv,
			"cycles", sw.Cycles,
			"removed", stats.Removed,
			"promoted", stats.Promoted,
			"shuffles", stats.Shuffles,
		)
	}

	report.Elapsed = time.Since(started)
	return report, nil
}

func runSim(_ *cobra.Command, args []string) {
	s := mustLoadSettings()
	defer s.close()

	id := "original"
	if len(args) > 0 {
		id = args[0]
	}
	setup, err := s.resolveSetup(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'match3 variants' or 'match3 levels' to see available boards.")
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = setup.Seed
	}
	if seed == 0 {
		seed = core.RuntimeConfig{}.ResolveSeed()
	}

	var out io.Writer = os.Stderr
	if flagSimQuiet {
		out = io.Discard
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "sim",
	})

	report, err := simulate(setup, seed, flagSimMoves, logger, s.config.BoardOptions(s.logger)...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	fmt.Printf("%s (%s) seed %d\n\n", setup.Title, setup.ID, seed)
	if g := report.Board.Grid(); g != nil {
		fmt.Println(match3.RenderASCII(g))
	}
	fmt.Printf("swaps     %d (%d reverted)\n", report.Swaps, report.Reverts)
	fmt.Printf("removed   %d\n", report.Stats.Removed)
	fmt.Printf("bonuses   %d\n", report.Stats.Promoted)
	fmt.Printf("cycles    %d\n", report.Stats.Cycles)
	fmt.Printf("shuffles  %d\n", report.Stats.Shuffles)
	fmt.Printf("outcome   %s\n", report.Outcome)

	if flagSimRecord {
		if store := openStore(); store != nil {
			if _, saveErr := store.SaveSession(report.Session()); saveErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not record session: %v\n", saveErr)
			}
			store.Close()
		}
	}

	if err != nil {
		os.Exit(1)
	}
}
