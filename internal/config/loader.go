package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMatch3 loads match-3 configuration.
// Search order: customPath -> ~/.arcade/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
// Files may be partial; missing keys keep their default values.
func LoadMatch3(customPath string) (Match3Config, error) {
	cfg, err := loadMatch3(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadMatch3(customPath string) (Match3Config, error) {
	cfg := DefaultMatch3Config()

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
	if userCfgPath := userConfigPath("match3.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultMatch3Config()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "match3.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultMatch3Config()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMatch3YAML, &cfg); err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a config file in the user's config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
