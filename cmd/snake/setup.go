package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/loop"
)

// loadGame resolves the config file and difficulty flag into a validated
// config and its policy. Callers must run the returned close func.
func loadGame() (config.SnakeConfig, loop.Policy, func(), error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, nil, nil, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, nil, nil, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, err
	}

	policy, closePolicy, err := cfg.Policy()
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, policy, closePolicy, nil
}

// presetHint returns a follow-up line for unknown preset errors.
func presetHint(err error) string {
	var unknown *config.UnknownPresetError
	if errors.As(err, &unknown) {
		return "Run 'snake presets' to see available difficulties."
	}
	return ""
}

// newLogger builds the logger for a command. Interactive commands pass
// fallback io.Discard so logs never draw over the game; servers pass stderr.
// The returned close func flushes the log file, if any.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}
