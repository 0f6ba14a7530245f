package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadJoust loads the game configuration.
// Search order: customPath -> ~/.joust/configs/joust.yaml -> ./configs/joust.yaml -> embedded default
//
// YAML is decoded on top of the hard-coded defaults so partial files only
// override the keys they set.
func LoadJoust(customPath string) (JoustConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultJoustConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("joust.yaml"), filepath.Join("configs", "joust.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := DefaultJoustConfig()
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultJoustConfig()
	if err := yaml.Unmarshal(defaultJoustYAML, &cfg); err != nil {
		return DefaultJoustConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ResolvePath reports which file LoadJoust would read, or "" for the
// embedded default. Used by the watcher.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range []string{userConfigPath("joust.yaml"), filepath.Join("configs", "joust.yaml")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".joust", "configs", filename)
}
