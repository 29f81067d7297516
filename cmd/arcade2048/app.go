package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/config"
	"github.com/vovakirdan/arcade2048/internal/service"
	"github.com/vovakirdan/arcade2048/internal/storage"
	"github.com/vovakirdan/arcade2048/internal/store"
)

// app bundles everything a subcommand needs.
type app struct {
	cfg    config.Config
	logger *log.Logger
	scores *storage.Store // nil when the leaderboard is disabled or unavailable
	svc    *service.Service
}

// newApp loads the configuration, opens the leaderboard and builds the game
// service. Logs go to out.
func newApp(out io.Writer) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.Enabled = true
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade2048",
		Level:           level,
	})

	a := &app{cfg: cfg, logger: logger}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithSeed(seed),
		service.WithSettings(service.Settings{
			GridSize:   cfg.Game.GridSize,
			HistoryCap: cfg.Game.HistoryCap,
			Spawn4Prob: cfg.Game.Spawn4Prob,
		}),
	}

	if cfg.Storage.Enabled {
		st, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			// Games still work without a leaderboard.
			logger.Warn("could not open scores database", "path", cfg.Storage.DBPath, "err", err)
		} else {
			a.scores = st
			opts = append(opts, service.WithLeaderboard(st))
		}
	}

	engine := ai.NewEngine(cfg.EngineOptions(seed)...)
	a.svc = service.New(store.NewMemoryStore(), engine, opts...)
	return a, nil
}

// Close releases the leaderboard database.
func (a *app) Close() {
	if a.scores != nil {
		if err := a.scores.Close(); err != nil {
			a.logger.Warn("closing scores database", "err", err)
		}
	}
}
