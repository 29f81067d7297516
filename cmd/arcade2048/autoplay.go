package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/grid"
	"github.com/vovakirdan/arcade2048/internal/platform/tui"
	"github.com/vovakirdan/arcade2048/internal/service"
)

var (
	flagAutoSize    int
	flagAutoDiff    string
	flagAutoVerbose bool
	flagAutoDelay   time.Duration
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the AI play a game without a UI",
	Long: `Run a full AI game and print the final board, score and move count.
The result is recorded on the leaderboard as an "ai" game.

Examples:
  arcade2048 autoplay
  arcade2048 autoplay --difficulty hard --seed 7
  arcade2048 autoplay --size 3 --verbose`,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagAutoSize, "size", 0, "Grid size (default from config)")
	autoplayCmd.Flags().StringVar(&flagAutoDiff, "difficulty", "medium", "AI difficulty: easy, medium, hard")
	autoplayCmd.Flags().BoolVarP(&flagAutoVerbose, "verbose", "v", false, "Print every move")
	autoplayCmd.Flags().DurationVar(&flagAutoDelay, "delay", 0, "Pause between moves")
}

func runAutoplay(cmd *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := ai.ParseDifficulty(flagAutoDiff)
	id, _, err := a.svc.NewPlayerGame(ctx, "", flagAutoSize, "autoplay-"+string(d))
	if err != nil {
		return err
	}
	defer a.svc.Delete(ctx, id) //nolint:errcheck // Delete never fails

	out := cmd.OutOrStdout()
	start := time.Now()
	n, err := a.svc.Autoplay(ctx, id, d, flagAutoDelay, func(s service.Step) error {
		if flagAutoVerbose {
			fmt.Fprintf(out, "%4d  %-5s  +%-5d score %d\n", s.Number, s.Direction, s.Gained, s.State.Score)
		}
		return nil
	})
	if err != nil {
		return err
	}

	state, err := a.svc.State(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, tui.RenderPlain(state.Grid))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Difficulty: %s\n", d)
	fmt.Fprintf(out, "Score:      %d\n", state.Score)
	fmt.Fprintf(out, "Max tile:   %d\n", grid.MaxTile(state.Grid))
	fmt.Fprintf(out, "Moves:      %d\n", n)
	fmt.Fprintf(out, "Took:       %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
