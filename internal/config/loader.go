package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the rules file looked up in the user and local config directories.
const ConfigFileName = "colorplace.yaml"

// LoadColorPlace loads the game rules.
// Search order: customPath -> ~/.colorplace/configs/colorplace.yaml -> ./configs/colorplace.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadColorPlace(customPath string) (ColorPlaceConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultColorPlaceConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return DefaultColorPlaceConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return DefaultColorPlaceConfig(), fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFileName); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", ConfigFileName)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := decode(defaultColorPlaceYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultColorPlaceConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file; unreadable or invalid files are skipped.
func tryLoad(path string) (ColorPlaceConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ColorPlaceConfig{}, false
	}
	cfg, err := decode(data)
	if err != nil || cfg.Validate() != nil {
		return ColorPlaceConfig{}, false
	}
	return cfg, true
}

func decode(data []byte) (ColorPlaceConfig, error) {
	cfg := DefaultColorPlaceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".colorplace", "configs", filename)
}
