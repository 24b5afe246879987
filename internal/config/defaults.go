package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{Size: 20},
		Speed: SpeedConfig{
			InitialMS: 150,
			MinMS:     50,
			StepMS:    5,
		},
		Scoring:   ScoringConfig{FoodReward: 10},
		Autopilot: AutopilotConfig{ExploreChance: 0.3},
		Session: SessionConfig{
			DefaultMode: "walls",
			FrameRate:   30,
		},
		Spectator: SpectatorConfig{
			RestartDelayMS:   2000,
			RefreshIntervalS: 5,
			DemoPlayers: []DemoPlayer{
				{Username: "PixelMaster", Mode: "walls", Score: 450, PlayingForS: 120},
				{Username: "NeonViper", Mode: "passthrough", Score: 320, PlayingForS: 90},
				{Username: "RetroGamer", Mode: "walls", Score: 180, PlayingForS: 60},
			},
		},
		Leaderboard: LeaderboardConfig{
			Size: 10,
			Seed: []SeedEntry{
				{Username: "PixelMaster", Mode: "walls", Score: 2450, Date: "2024-01-15"},
				{Username: "NeonViper", Mode: "passthrough", Score: 2100, Date: "2024-01-14"},
				{Username: "RetroGamer", Mode: "walls", Score: 1890, Date: "2024-01-13"},
				{Username: "ArcadeKing", Mode: "passthrough", Score: 1750, Date: "2024-01-12"},
				{Username: "BitRunner", Mode: "walls", Score: 1600, Date: "2024-01-11"},
				{Username: "CyberSnake", Mode: "passthrough", Score: 1520, Date: "2024-01-10"},
				{Username: "GlowWorm", Mode: "walls", Score: 1400, Date: "2024-01-09"},
				{Username: "NightCrawler", Mode: "passthrough", Score: 1350, Date: "2024-01-08"},
				{Username: "PixelPython", Mode: "walls", Score: 1200, Date: "2024-01-07"},
				{Username: "ElectricEel", Mode: "passthrough", Score: 1100, Date: "2024-01-06"},
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
