package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade2048/internal/storage"
	"github.com/vovakirdan/arcade2048/internal/store"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [human|ai]",
	Short: "Show the leaderboard",
	Long: `Display the top scores of finished games, optionally for one mode.

Examples:
  arcade2048 scores
  arcade2048 scores ai --limit 20
  arcade2048 scores human --clear`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(store.ModeHuman), string(store.ModeAI)},
	RunE:      runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultLimit, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scores instead of listing them")
}

func runScores(cmd *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if mode != string(store.ModeHuman) && mode != string(store.ModeAI) {
			return fmt.Errorf("unknown mode %q (want human or ai)", mode)
		}
	}

	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	if a.scores == nil {
		return errors.New("leaderboard storage is disabled or unavailable")
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := a.scores.ClearScores(ctx, mode); err != nil {
			return err
		}
		fmt.Fprintln(out, "Scores cleared.")
		return nil
	}

	scores, err := a.scores.TopScores(ctx, mode, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := "all modes"
	if mode != "" {
		title = mode
	}
	fmt.Fprintf(out, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Finish a game with 'arcade2048 play' or 'arcade2048 autoplay' to set one!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-5s  %-8s  %-6s  %-4s  %s\n", "Rank", "Player", "Mode", "Score", "Max", "Size", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-5s  %-8s  %-6s  %-4s  %s\n", "----", "------", "----", "-----", "---", "----", "----")
	for i, r := range scores {
		fmt.Fprintf(out, "  %-4d  %-16s  %-5s  %-8d  %-6d  %-4d  %s\n",
			i+1, r.Player, r.Mode, r.Score, r.MaxTile, r.GridSize, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := a.scores.Stats(ctx)
	if err != nil {
		a.logger.Warn("could not load score stats", "err", err)
		return nil
	}
	fmt.Fprintln(out)
	for _, m := range []string{string(store.ModeHuman), string(store.ModeAI)} {
		if mode != "" && m != mode {
			continue
		}
		if s, ok := stats[m]; ok {
			fmt.Fprintf(out, "%-5s  games %d  best %d  avg %.0f  max tile %d\n", m, s.GamesCount, s.HighScore, s.AvgScore, s.BestTile)
		}
	}
	return nil
}
