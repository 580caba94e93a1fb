package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/world"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default configuration: the classic
// 21x12 board with the normal curve.
func DefaultSnakeConfig() SnakeConfig {
	def := world.DefaultConfig()
	ref := loop.ReferencePolicy()
	return SnakeConfig{
		Board: BoardConfig{
			Width:    def.Width,
			Height:   def.Height,
			MaxLevel: def.MaxLevel,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Base:   ref.Base,
			Scale:  ref.Scale,
			Offset: ref.Offset,
			FPS:    6,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
