package config

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// Describe returns a one-line summary for the presets command.
func (p DifficultyPreset) Describe() string {
	switch p {
	case DifficultyEasy:
		return "slow start, gentle speed-up"
	case DifficultyNormal:
		return "classic curve: 6*(level*0.25)+0.75 fps"
	case DifficultyHard:
		return "fast start, steep speed-up"
	case DifficultyFixed:
		return "constant speed, level has no effect"
	default:
		return ""
	}
}

// UnknownPresetError is returned by ParsePreset for names it cannot resolve.
type UnknownPresetError struct {
	Name       string
	Suggestion DifficultyPreset
}

func (e *UnknownPresetError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("config: unknown difficulty %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("config: unknown difficulty %q", e.Name)
}

// ParsePreset resolves a preset name. The empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", &UnknownPresetError{Name: name, Suggestion: SuggestPreset(name)}
}

// SuggestPreset returns the closest preset name within two edits, or "".
func SuggestPreset(name string) DifficultyPreset {
	name = strings.ToLower(name)
	best := DifficultyPreset("")
	bestDist := 3
	for _, p := range Presets() {
		if d := levenshtein.ComputeDistance(name, string(p)); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Base = 4
		cfg.Difficulty.Scale = 0.25
		cfg.Difficulty.Offset = 1
	case DifficultyNormal:
		cfg.Difficulty.Base = 6
		cfg.Difficulty.Scale = 0.25
		cfg.Difficulty.Offset = 0.75
	case DifficultyHard:
		cfg.Difficulty.Base = 8
		cfg.Difficulty.Scale = 0.3
		cfg.Difficulty.Offset = 2
	case DifficultyFixed:
		if cfg.Difficulty.FPS <= 0 {
			cfg.Difficulty.FPS = 6
		}
	}
}
