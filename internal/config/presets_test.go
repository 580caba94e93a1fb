package config

import (
	"errors"
	"testing"
)

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
	}{
		{"", DifficultyNormal},
		{"easy", DifficultyEasy},
		{"Normal", DifficultyNormal},
		{" hard ", DifficultyHard},
		{"FIXED", DifficultyFixed},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestParsePresetSuggestion(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
	}{
		{"hrad", DifficultyHard},
		{"eazy", DifficultyEasy},
		{"normla", DifficultyNormal},
		{"fixd", DifficultyFixed},
		{"nightmare", ""},
	}
	for _, tc := range tests {
		_, err := ParsePreset(tc.in)
		var unknown *UnknownPresetError
		if !errors.As(err, &unknown) {
			t.Fatalf("ParsePreset(%q) error = %v, expected UnknownPresetError", tc.in, err)
		}
		if unknown.Suggestion != tc.want {
			t.Errorf("suggestion for %q = %q, expected %q", tc.in, unknown.Suggestion, tc.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	for _, preset := range Presets() {
		t.Run(string(preset), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			ApplyPreset(&cfg, preset)
			if cfg.Difficulty.Preset != preset {
				t.Errorf("preset not recorded: %q", cfg.Difficulty.Preset)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %q produced invalid config: %v", preset, err)
			}
			if preset.Describe() == "" {
				t.Error("missing description")
			}
		})
	}
}

func TestPresetsOrderedBySpeed(t *testing.T) {
	rate := func(p DifficultyPreset, level int) float64 {
		cfg := DefaultSnakeConfig()
		ApplyPreset(&cfg, p)
		policy, closeFn, err := cfg.Policy()
		if err != nil {
			t.Fatalf("Policy failed: %v", err)
		}
		defer closeFn()
		return policy.Rate(level)
	}

	for _, level := range []int{1, 5, 10} {
		easy, normal, hard := rate(DifficultyEasy, level), rate(DifficultyNormal, level), rate(DifficultyHard, level)
		if !(easy < normal && normal < hard) {
			t.Errorf("level %d: easy %v, normal %v, hard %v not increasing", level, easy, normal, hard)
		}
	}

	if rate(DifficultyFixed, 0) != rate(DifficultyFixed, 10) {
		t.Error("fixed preset should ignore level")
	}
}
