package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade2048/internal/httpapi"
)

var (
	flagHTTPAddr string
	flagNoCORS   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON API on the configured address.

All game state lives in memory; finished games are written to the
leaderboard database when storage is enabled.

Endpoints are mounted under /api, including a websocket at
/api/ws/autoplay that streams an AI game move by move.

Examples:
  arcade2048 serve                  # Listen on the configured address (:5000)
  arcade2048 serve --address :8080
  arcade2048 serve --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "address", "", "HTTP listen address (overrides config)")
	serveCmd.Flags().BoolVar(&flagNoCORS, "no-cors", false, "Disable CORS headers")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	sc := a.cfg.Server
	if flagHTTPAddr != "" {
		sc.Address = flagHTTPAddr
	}

	srv := httpapi.New(httpapi.Config{
		Address:         sc.Address,
		CORS:            sc.CORS && !flagNoCORS,
		ReadTimeout:     sc.ReadTimeout,
		WriteTimeout:    sc.WriteTimeout,
		ShutdownTimeout: sc.ShutdownTimeout,
		AutoplayDelay:   a.cfg.AI.AutoplayDelay,
	}, a.svc, a.logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}
