// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// SnakeConfig contains all configuration for the game and its front ends.
type SnakeConfig struct {
	Grid        GridConfig        `yaml:"grid"`
	Speed       SpeedConfig       `yaml:"speed"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Autopilot   AutopilotConfig   `yaml:"autopilot"`
	Session     SessionConfig     `yaml:"session"`
	Spectator   SpectatorConfig   `yaml:"spectator"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// GridConfig defines the playfield.
type GridConfig struct {
	Size int `yaml:"size"`
}

// SpeedConfig defines the move interval and how it shrinks per food.
type SpeedConfig struct {
	InitialMS int `yaml:"initial_ms"`
	MinMS     int `yaml:"min_ms"`
	StepMS    int `yaml:"step_ms"`
}

// ScoringConfig defines points.
type ScoringConfig struct {
	FoodReward int `yaml:"food_reward"`
}

// AutopilotConfig tunes the spectator AI.
type AutopilotConfig struct {
	ExploreChance float64 `yaml:"explore_chance"` // 0.0 = always chase food
}

// SessionConfig defines front-end defaults.
type SessionConfig struct {
	DefaultMode string `yaml:"default_mode"` // "walls" or "passthrough"
	FrameRate   int    `yaml:"frame_rate"`   // UI refresh rate; the game itself moves at Speed
}

// SpectatorConfig defines the watch screen.
type SpectatorConfig struct {
	RestartDelayMS   int          `yaml:"restart_delay_ms"`
	RefreshIntervalS int          `yaml:"refresh_interval_s"`
	DemoPlayers      []DemoPlayer `yaml:"demo_players"`
}

// DemoPlayer is listed on the watch screen when nobody is playing.
type DemoPlayer struct {
	Username string `yaml:"username"`
	Mode     string `yaml:"mode"`
	Score    int    `yaml:"score"`
	// PlayingForS backdates the start time shown in the list.
	PlayingForS int `yaml:"playing_for_s"`
}

// LeaderboardConfig defines the high score table.
type LeaderboardConfig struct {
	Size int         `yaml:"size"`
	Seed []SeedEntry `yaml:"seed"` // inserted into an empty database
}

// SeedEntry is a leaderboard row created on first run.
type SeedEntry struct {
	Username string `yaml:"username"`
	Mode     string `yaml:"mode"`
	Score    int    `yaml:"score"`
	Date     string `yaml:"date"` // YYYY-MM-DD
}

// Rules converts the config to engine rules.
func (c SnakeConfig) Rules() snake.Rules {
	return snake.Rules{
		GridSize:     c.Grid.Size,
		InitialSpeed: time.Duration(c.Speed.InitialMS) * time.Millisecond,
		MinSpeed:     time.Duration(c.Speed.MinMS) * time.Millisecond,
		SpeedStep:    time.Duration(c.Speed.StepMS) * time.Millisecond,
		FoodReward:   c.Scoring.FoodReward,
	}
}

// AutopilotPolicy returns the spectator AI tuned by the config.
func (c SnakeConfig) AutopilotPolicy() snake.Autopilot {
	return snake.Autopilot{ExploreChance: c.Autopilot.ExploreChance}
}

// Mode returns the configured default mode.
func (c SnakeConfig) Mode() snake.Mode {
	m, err := snake.ParseMode(c.Session.DefaultMode)
	if err != nil {
		return snake.ModeBlocked
	}
	return m
}

// RestartDelay returns the pause before a finished spectator game restarts.
func (c SnakeConfig) RestartDelay() time.Duration {
	return time.Duration(c.Spectator.RestartDelayMS) * time.Millisecond
}

// RefreshInterval returns how often the watch list is reloaded.
func (c SnakeConfig) RefreshInterval() time.Duration {
	return time.Duration(c.Spectator.RefreshIntervalS) * time.Second
}

// Validate rejects values the engine cannot run with.
func (c SnakeConfig) Validate() error {
	var errs []error
	if c.Grid.Size < 5 {
		errs = append(errs, fmt.Errorf("grid.size must be at least 5, got %d", c.Grid.Size))
	}
	if c.Speed.MinMS <= 0 {
		errs = append(errs, fmt.Errorf("speed.min_ms must be positive, got %d", c.Speed.MinMS))
	}
	if c.Speed.InitialMS < c.Speed.MinMS {
		errs = append(errs, fmt.Errorf("speed.initial_ms (%d) is below speed.min_ms (%d)",
			c.Speed.InitialMS, c.Speed.MinMS))
	}
	if c.Speed.StepMS < 0 {
		errs = append(errs, fmt.Errorf("speed.step_ms must not be negative, got %d", c.Speed.StepMS))
	}
	if c.Scoring.FoodReward <= 0 {
		errs = append(errs, fmt.Errorf("scoring.food_reward must be positive, got %d", c.Scoring.FoodReward))
	}
	if c.Autopilot.ExploreChance < 0 || c.Autopilot.ExploreChance > 1 {
		errs = append(errs, fmt.Errorf("autopilot.explore_chance must be in [0,1], got %g",
			c.Autopilot.ExploreChance))
	}
	if _, err := snake.ParseMode(c.Session.DefaultMode); err != nil {
		errs = append(errs, fmt.Errorf("session.default_mode: %w", err))
	}
	if c.Session.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("session.frame_rate must be positive, got %d", c.Session.FrameRate))
	}
	if c.Leaderboard.Size <= 0 {
		errs = append(errs, fmt.Errorf("leaderboard.size must be positive, got %d", c.Leaderboard.Size))
	}
	for i, p := range c.Spectator.DemoPlayers {
		if _, err := snake.ParseMode(p.Mode); err != nil {
			errs = append(errs, fmt.Errorf("spectator.demo_players[%d]: %w", i, err))
		}
	}
	for i, e := range c.Leaderboard.Seed {
		if _, err := snake.ParseMode(e.Mode); err != nil {
			errs = append(errs, fmt.Errorf("leaderboard.seed[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
