package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialSpeedForPreset returns the start interval in milliseconds for a
// preset. Zero means keep the configured value.
func InitialSpeedForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 200
	case DifficultyNormal:
		return 150
	case DifficultyHard:
		return 100
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Speed.StepMS = 0
		return
	}
	if ms := InitialSpeedForPreset(preset); ms > 0 {
		cfg.Speed.InitialMS = ms
		if cfg.Speed.MinMS > ms {
			cfg.Speed.MinMS = ms
		}
	}
}
