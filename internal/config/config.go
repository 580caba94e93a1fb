// Package config provides YAML and TOML configuration loading and
// difficulty presets for the snake game.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/world"
)

// SnakeConfig contains all configuration for a game.
type SnakeConfig struct {
	Board      BoardConfig      `yaml:"board" toml:"board"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// BoardConfig defines the playing field.
type BoardConfig struct {
	Width    int `yaml:"width" toml:"width"`
	Height   int `yaml:"height" toml:"height"`
	MaxLevel int `yaml:"max_level" toml:"max_level"`
}

// DifficultyConfig defines how the tick rate follows the level.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset" toml:"preset"`
	Base   float64          `yaml:"base" toml:"base"`
	Scale  float64          `yaml:"scale" toml:"scale"`
	Offset float64          `yaml:"offset" toml:"offset"`
	FPS    float64          `yaml:"fps" toml:"fps"` // fixed preset only
	Script string           `yaml:"script" toml:"script"`
}

// World returns the simulation settings for this config.
func (c SnakeConfig) World(seed int64) world.Config {
	return world.Config{
		Width:    c.Board.Width,
		Height:   c.Board.Height,
		MaxLevel: c.Board.MaxLevel,
		Seed:     seed,
	}
}

// Validate checks board bounds and that the configured policy yields a
// positive rate for every level the world can report.
func (c SnakeConfig) Validate() error {
	if c.Board.Width < 4 || c.Board.Height < 4 {
		return fmt.Errorf("config: board %dx%d is too small (min 4x4)", c.Board.Width, c.Board.Height)
	}
	if c.Board.MaxLevel < 1 {
		return fmt.Errorf("config: max_level must be at least 1, got %d", c.Board.MaxLevel)
	}
	if c.Difficulty.Script != "" {
		// Script policies validate themselves on load.
		return nil
	}
	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		return err
	}

	policy := c.staticPolicy()
	for level := 0; level <= c.Board.MaxLevel; level++ {
		if rate := policy.Rate(level); !(rate > 0) {
			return fmt.Errorf("config: difficulty yields rate %v at level %d, must be positive", rate, level)
		}
	}
	return nil
}

// Policy builds the difficulty policy. The returned close func releases
// any script interpreter and is always safe to call.
func (c SnakeConfig) Policy() (loop.Policy, func(), error) {
	if c.Difficulty.Script != "" {
		p, err := loop.LoadScriptPolicy(c.Difficulty.Script, c.Board.MaxLevel)
		if err != nil {
			return nil, func() {}, fmt.Errorf("config: %w", err)
		}
		return p, p.Close, nil
	}
	return c.staticPolicy(), func() {}, nil
}

func (c SnakeConfig) staticPolicy() loop.Policy {
	if c.Difficulty.Preset == DifficultyFixed {
		return loop.FixedPolicy{FPS: c.Difficulty.FPS}
	}
	return loop.LinearPolicy{
		Base:   c.Difficulty.Base,
		Scale:  c.Difficulty.Scale,
		Offset: c.Difficulty.Offset,
	}
}
