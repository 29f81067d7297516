// arcade2048 is a 2048 game server with an alpha-beta AI advisor.
//
// Usage:
//
//	arcade2048 serve             - Start the HTTP/websocket API
//	arcade2048 ssh               - Start the SSH terminal server
//	arcade2048 play              - Play in the local terminal
//	arcade2048 autoplay          - Let the AI play a headless game
//	arcade2048 scores [mode]     - Show the leaderboard
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.arcade2048, ./configs)
//	--seed <value>      - RNG seed for reproducible games (0 = time based)
//	--db <path>         - Override the leaderboard database path
//	--log-level <lvl>   - Override the log level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade2048",
	Short: "2048 with an alpha-beta AI advisor",
	Long: `arcade2048 runs 2048 games with an AI that can suggest moves,
play for you, or race you in a versus match.

Available commands:
  serve     - JSON API with websocket autoplay
  ssh       - Terminal UI over SSH
  play      - Terminal UI in this terminal
  autoplay  - Headless AI game
  scores    - Leaderboard of finished games

Examples:
  arcade2048 serve
  arcade2048 ssh --address :2222
  arcade2048 play --size 5 --difficulty hard
  arcade2048 autoplay --difficulty easy --seed 42
  arcade2048 scores ai`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(scoresCmd)
}
