package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMarbles loads the marbles configuration.
// Search order: customPath -> ~/.marbles/configs/marbles.yaml -> ./configs/marbles.yaml -> embedded default
//
// Files are decoded over the defaults so partial files only override what they set.
func LoadMarbles(customPath string) (MarblesConfig, error) {
	cfg := DefaultMarblesConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("marbles.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "marbles.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMarblesYAML, &cfg); err != nil {
		return DefaultMarblesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing or invalid files are skipped.
func tryLoad(path string) (MarblesConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MarblesConfig{}, false
	}
	cfg := DefaultMarblesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MarblesConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return MarblesConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".marbles", "configs", filename)
}
