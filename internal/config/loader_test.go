package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults: %v", err)
	}
	def := DefaultSnakeConfig()

	if cfg.Rules() != def.Rules() {
		t.Errorf("Rules mismatch: %+v vs %+v", cfg.Rules(), def.Rules())
	}
	if cfg.Rules() != snake.DefaultRules() {
		t.Errorf("Default rules differ from engine constants: %+v", cfg.Rules())
	}
	if len(cfg.Spectator.DemoPlayers) != 3 {
		t.Errorf("Expected 3 demo players, got %d", len(cfg.Spectator.DemoPlayers))
	}
	if len(cfg.Leaderboard.Seed) != 10 {
		t.Errorf("Expected 10 seed entries, got %d", len(cfg.Leaderboard.Seed))
	}
	if cfg.RestartDelay() != 2*time.Second {
		t.Errorf("Expected 2s restart delay, got %v", cfg.RestartDelay())
	}
	if cfg.Mode() != snake.ModeBlocked {
		t.Errorf("Expected walls default, got %s", cfg.Mode())
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := "grid:\n  size: 12\nsession:\n  default_mode: passthrough\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Size != 12 {
		t.Errorf("Expected grid 12, got %d", cfg.Grid.Size)
	}
	if cfg.Mode() != snake.ModeWrap {
		t.Errorf("Expected passthrough, got %s", cfg.Mode())
	}
	if cfg.Speed.InitialMS != 150 {
		t.Errorf("Unset key lost its default: initial_ms=%d", cfg.Speed.InitialMS)
	}
}

func TestAutopilotPolicy(t *testing.T) {
	if got, want := DefaultSnakeConfig().AutopilotPolicy(), snake.DefaultAutopilot(); got != want {
		t.Errorf("Default policy = %+v, want %+v", got, want)
	}

	cfg, err := Parse([]byte("autopilot:\n  explore_chance: 0.5\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cfg.AutopilotPolicy().ExploreChance; got != 0.5 {
		t.Errorf("Expected explore chance 0.5, got %g", got)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("grid: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("grid:\n  size: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "grid.size") {
		t.Errorf("Expected grid.size validation error, got %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Size != 20 {
		t.Errorf("Expected default grid, got %d", cfg.Grid.Size)
	}

	// Local configs directory.
	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", "snake.yaml"), []byte("grid:\n  size: 15\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = Load("")
	if cfg.Grid.Size != 15 {
		t.Errorf("Expected local config grid 15, got %d", cfg.Grid.Size)
	}

	// User config wins over local.
	if err := os.MkdirAll(filepath.Join(home, ".snake"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".snake", "config.yaml"), []byte("grid:\n  size: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = Load("")
	if cfg.Grid.Size != 25 {
		t.Errorf("Expected user config grid 25, got %d", cfg.Grid.Size)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SnakeConfig)
		field  string
	}{
		{"tiny grid", func(c *SnakeConfig) { c.Grid.Size = 3 }, "grid.size"},
		{"zero min", func(c *SnakeConfig) { c.Speed.MinMS = 0 }, "speed.min_ms"},
		{"initial below min", func(c *SnakeConfig) { c.Speed.InitialMS = 10 }, "speed.initial_ms"},
		{"negative step", func(c *SnakeConfig) { c.Speed.StepMS = -1 }, "speed.step_ms"},
		{"zero reward", func(c *SnakeConfig) { c.Scoring.FoodReward = 0 }, "scoring.food_reward"},
		{"explore > 1", func(c *SnakeConfig) { c.Autopilot.ExploreChance = 1.5 }, "autopilot.explore_chance"},
		{"bad mode", func(c *SnakeConfig) { c.Session.DefaultMode = "portal" }, "session.default_mode"},
		{"zero fps", func(c *SnakeConfig) { c.Session.FrameRate = 0 }, "session.frame_rate"},
		{"zero board", func(c *SnakeConfig) { c.Leaderboard.Size = 0 }, "leaderboard.size"},
		{"bad demo mode", func(c *SnakeConfig) { c.Spectator.DemoPlayers[0].Mode = "x" }, "demo_players[0]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Expected error mentioning %q, got %v", tc.field, err)
			}
		})
	}

	if err := DefaultSnakeConfig().Validate(); err != nil {
		t.Errorf("Defaults should be valid: %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		initial int
		step    int
	}{
		{DifficultyEasy, 200, 5},
		{DifficultyNormal, 150, 5},
		{DifficultyHard, 100, 5},
		{DifficultyFixed, 150, 0},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Speed.InitialMS != tc.initial || cfg.Speed.StepMS != tc.step {
				t.Errorf("Got initial=%d step=%d", cfg.Speed.InitialMS, cfg.Speed.StepMS)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Preset produced invalid config: %v", err)
			}
		})
	}

	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("Expected error for unknown preset")
	}
}
