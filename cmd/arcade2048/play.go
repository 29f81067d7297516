package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/platform/tui"
)

var (
	flagPlaySize   int
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 in this terminal",
	Long: `Start a game in the local terminal.

Controls:
  Arrows/WASD  - Move
  H            - Hint from the AI
  U            - Undo
  I            - Let the AI play one move
  Space        - Toggle AI autoplay
  L            - Cycle AI level (easy, medium, hard)
  R            - Restart
  Tab          - Leaderboard
  Q/Ctrl+C     - Quit

Examples:
  arcade2048 play
  arcade2048 play --size 5
  arcade2048 play --difficulty hard --player alice`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlaySize, "size", 0, "Grid size (default from config)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "medium", "AI difficulty: easy, medium, hard")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name for the leaderboard (default $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Logs would corrupt the alternate screen.
	a, err := newApp(io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	return tui.Run(a.svc, tui.Options{
		Player:        player,
		GridSize:      flagPlaySize,
		Difficulty:    ai.ParseDifficulty(flagDifficulty),
		AutoplayDelay: a.cfg.AI.AutoplayDelay,
		Width:         width,
		Height:        height,
	})
}
