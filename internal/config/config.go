// Package config provides YAML-based configuration loading for the
// arcade2048 server, terminal client and AI advisor.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/grid"
)

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Game    GameConfig    `yaml:"game"`
	AI      AIConfig      `yaml:"ai"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	CORS            bool          `yaml:"cors"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// GameConfig defines session parameters.
type GameConfig struct {
	GridSize   int     `yaml:"grid_size"`
	HistoryCap int     `yaml:"history_cap"`
	Spawn4Prob float64 `yaml:"spawn4_prob"`
}

// AIConfig defines the advisor's heuristic and search parameters.
type AIConfig struct {
	Weights        ai.Weights    `yaml:"weights"`
	AdversaryCells int           `yaml:"adversary_cells"`
	Difficulties   ai.Levels     `yaml:"difficulties"`
	AutoplayDelay  time.Duration `yaml:"autoplay_delay"`
}

// StorageConfig configures the leaderboard database.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// SSHConfig configures the SSH terminal server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // auto-generated when empty
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate reports every impossible value in c.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is empty"))
	}
	if c.Game.GridSize < grid.MinSize || c.Game.GridSize > grid.MaxSize {
		errs = append(errs, fmt.Errorf("game.grid_size %d out of range [%d, %d]", c.Game.GridSize, grid.MinSize, grid.MaxSize))
	}
	if c.Game.HistoryCap < 0 {
		errs = append(errs, fmt.Errorf("game.history_cap %d is negative", c.Game.HistoryCap))
	}
	if c.Game.Spawn4Prob < 0 || c.Game.Spawn4Prob > 1 {
		errs = append(errs, fmt.Errorf("game.spawn4_prob %v out of range [0, 1]", c.Game.Spawn4Prob))
	}
	if c.AI.AdversaryCells < 1 {
		errs = append(errs, fmt.Errorf("ai.adversary_cells %d must be positive", c.AI.AdversaryCells))
	}
	for d, lvl := range c.AI.Difficulties {
		if lvl.Depth < 1 {
			errs = append(errs, fmt.Errorf("ai.difficulties.%s.depth %d must be positive", d, lvl.Depth))
		}
		if lvl.Randomness < 0 {
			errs = append(errs, fmt.Errorf("ai.difficulties.%s.randomness %d is negative", d, lvl.Randomness))
		}
	}
	if c.Storage.Enabled && c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path is empty"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// EngineOptions returns the advisor options described by the AI section.
func (c Config) EngineOptions(seed int64) []ai.Option {
	return []ai.Option{
		ai.WithWeights(c.AI.Weights),
		ai.WithLevels(c.AI.Difficulties),
		ai.WithAdversaryCells(c.AI.AdversaryCells),
		ai.WithSpawn4Prob(c.Game.Spawn4Prob),
		ai.WithSeed(seed),
	}
}
