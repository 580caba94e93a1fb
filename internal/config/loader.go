package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadSnake loads the game configuration on top of the defaults.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
// Only a custom path that fails to load is an error; other candidates are
// skipped when missing or malformed.
func LoadSnake(customPath string) (SnakeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return SnakeConfig{}, err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(userCfgPath, data); err == nil {
				return cfg, nil
			}
		}
	}

	local := filepath.Join("configs", "snake.yaml")
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := decode(local, data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := decode("snake.yaml", defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), nil
	}
	return cfg, nil
}

// decode parses data over the defaults, picking TOML or YAML by extension.
func decode(path string, data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return SnakeConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Unknown names are left as written for Validate to report.
	if preset, err := ParsePreset(string(cfg.Difficulty.Preset)); err == nil {
		cfg.Difficulty.Preset = preset
	}

	// easy and hard carry their own numbers; normal and fixed read them from the file.
	switch cfg.Difficulty.Preset {
	case DifficultyEasy, DifficultyHard:
		ApplyPreset(&cfg, cfg.Difficulty.Preset)
	}

	if cfg.Difficulty.Script != "" && !filepath.IsAbs(cfg.Difficulty.Script) {
		cfg.Difficulty.Script = filepath.Join(filepath.Dir(path), cfg.Difficulty.Script)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}
