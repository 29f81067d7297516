package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade2048/internal/ai"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults differ from Default():\n got %+v\nwant %+v", cfg, Default())
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() is invalid: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("game:\n  grid_size: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.GridSize != 5 {
		t.Errorf("grid size = %d, want 5 from user config", cfg.Game.GridSize)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  address: "127.0.0.1:8080"
  cors: false
game:
  grid_size: 6
ai:
  difficulties:
    hard:
      depth: 5
      randomness: 0
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Address != "127.0.0.1:8080" || cfg.Server.CORS {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Game.GridSize != 6 {
		t.Errorf("grid size = %d, want 6", cfg.Game.GridSize)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}

	// Untouched keys keep their defaults.
	if cfg.Game.HistoryCap != 10 || cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("defaults lost: history_cap=%d read_timeout=%v", cfg.Game.HistoryCap, cfg.Server.ReadTimeout)
	}
	if got := cfg.AI.Difficulties[ai.Hard].Depth; got != 5 {
		t.Errorf("hard depth = %d, want 5", got)
	}
	if got := cfg.AI.Difficulties[ai.Easy].Depth; got != 2 {
		t.Errorf("easy depth = %d, want default 2", got)
	}
	if cfg.AI.Weights != ai.DefaultWeights() {
		t.Errorf("weights = %+v, want defaults", cfg.AI.Weights)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "server: [unterminated", "failed to parse"},
		{"grid too small", "game:\n  grid_size: 1\n", "grid_size"},
		{"bad probability", "game:\n  spawn4_prob: 1.5\n", "spawn4_prob"},
		{"bad depth", "ai:\n  difficulties:\n    easy:\n      depth: 0\n", "depth"},
		{"bad log level", "log:\n  level: loud\n", "log.level"},
		{"missing db path", "storage:\n  enabled: true\n  db_path: \"\"\n", "db_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.AI.Difficulties = ai.Levels{ai.Medium: {Depth: 1, Randomness: 0}}

	e := ai.NewEngine(cfg.EngineOptions(1)...)
	if got := e.Level(ai.Medium).Depth; got != 1 {
		t.Errorf("medium depth = %d, want 1", got)
	}
	if e.Weights() != cfg.AI.Weights {
		t.Errorf("weights = %+v, want %+v", e.Weights(), cfg.AI.Weights)
	}
}
