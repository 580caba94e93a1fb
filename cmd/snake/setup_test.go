package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/loop"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	flagConfig, flagDifficulty, flagLogLevel, flagLogFile = "", "", "info", ""
}

func TestLoadGameDefaults(t *testing.T) {
	resetFlags(t)

	cfg, policy, closePolicy, err := loadGame()
	if err != nil {
		t.Fatalf("loadGame: %v", err)
	}
	defer closePolicy()

	if cfg.Difficulty.Preset != config.DifficultyNormal {
		t.Errorf("preset = %q, want normal", cfg.Difficulty.Preset)
	}
	ref := loop.ReferencePolicy()
	for level := 0; level <= cfg.Board.MaxLevel; level++ {
		if got, want := policy.Rate(level), ref.Rate(level); got != want {
			t.Errorf("Rate(%d) = %v, want %v", level, got, want)
		}
	}
}

func TestLoadGameDifficultyFlag(t *testing.T) {
	resetFlags(t)
	flagDifficulty = "HARD"

	_, policy, closePolicy, err := loadGame()
	if err != nil {
		t.Fatalf("loadGame: %v", err)
	}
	defer closePolicy()

	if policy.Rate(1) <= loop.ReferencePolicy().Rate(1) {
		t.Errorf("hard Rate(1) = %v, want faster than normal", policy.Rate(1))
	}
}

func TestLoadGameUnknownDifficulty(t *testing.T) {
	resetFlags(t)
	flagDifficulty = "hrad"

	_, _, _, err := loadGame()
	var unknown *config.UnknownPresetError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownPresetError", err)
	}
	if unknown.Suggestion != config.DifficultyHard {
		t.Errorf("suggestion = %q, want hard", unknown.Suggestion)
	}
	if presetHint(err) == "" {
		t.Error("expected a presets hint")
	}
}

func TestNewLogger(t *testing.T) {
	resetFlags(t)

	flagLogLevel = "loud"
	if _, _, err := newLogger("snake", io.Discard); err == nil {
		t.Error("expected error for invalid level")
	}

	flagLogLevel = "debug"
	flagLogFile = filepath.Join(t.TempDir(), "snake.log")
	logger, closeLog, err := newLogger("snake", io.Discard)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("hello", "tick", 1)
	closeLog()

	data, err := os.ReadFile(flagLogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestPortOf(t *testing.T) {
	tests := []struct{ in, want string }{
		{":23234", "23234"},
		{"localhost:8080", "8080"},
		{"8080", "8080"},
	}
	for _, tt := range tests {
		if got := portOf(tt.in); got != tt.want {
			t.Errorf("portOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
