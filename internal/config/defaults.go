package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/game"
	"github.com/vovakirdan/arcade2048/internal/grid"
)

//go:embed defaults/arcade2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":5000",
			CORS:            true,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Game: GameConfig{
			GridSize:   grid.DefaultSize,
			HistoryCap: game.DefaultHistoryCap,
			Spawn4Prob: grid.DefaultSpawn4Prob,
		},
		AI: AIConfig{
			Weights:        ai.DefaultWeights(),
			AdversaryCells: ai.DefaultAdversaryCells,
			Difficulties:   ai.DefaultLevels(),
			AutoplayDelay:  150 * time.Millisecond,
		},
		Storage: StorageConfig{
			Enabled: true,
			DBPath:  "~/.arcade2048/scores.db",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
