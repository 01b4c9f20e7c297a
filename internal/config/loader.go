package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlumber loads the platformer configuration.
// Search order: customPath -> ~/.plumber/configs/plumber.yaml ->
// ./configs/plumber.yaml -> embedded default
func LoadPlumber(customPath string) (PlumberConfig, error) {
	var cfg PlumberConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("plumber.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/plumber.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPlumberYAML, &cfg); err != nil {
		return DefaultPlumberConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".plumber", "configs", filename)
}

// ApplyPlumberPreset modifies the config based on a difficulty preset.
func ApplyPlumberPreset(cfg *PlumberConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.InitialLives = 5
		cfg.Enemies.GoombaSpeed = 1.5
		cfg.Enemies.KoopaSpeed = 1.5
	case DifficultyHard:
		cfg.Session.InitialLives = 1
		cfg.Enemies.GoombaSpeed = 3.0
		cfg.Enemies.KoopaSpeed = 3.0
		cfg.Enemies.ShellSpeed = 14.0
	}
}
