package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadEngine loads the engine configuration.
// Search order: customPath -> ~/.termgame/configs/engine.yaml -> ./configs/engine.yaml -> embedded default
func LoadEngine(customPath string) (EngineConfig, error) {
	cfg, err := load("engine", customPath, DefaultEngineConfig())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadBalls loads the bouncing-balls configuration.
// Search order: customPath -> ~/.termgame/configs/balls.yaml -> ./configs/balls.yaml -> embedded default
func LoadBalls(customPath string) (BallsConfig, error) {
	return load("balls", customPath, DefaultBallsConfig())
}

// LoadShooter loads the space shooter configuration.
// Search order: customPath -> ~/.termgame/configs/shooter.yaml -> ./configs/shooter.yaml -> embedded default
func LoadShooter(customPath string) (ShooterConfig, error) {
	return load("shooter", customPath, DefaultShooterConfig())
}

// SourceEmbedded is the source reported for the built-in defaults.
const SourceEmbedded = "embedded"

// load decodes the first config found for name over fallback, so files may
// set only the keys they change.
func load[T any](name, customPath string, fallback T) (T, error) {
	cfg, _, err := resolve(name, customPath, fallback)
	return cfg, err
}

// Source returns the file the config called name would be loaded from, or
// SourceEmbedded. It reports an error only for a bad explicit path, like
// the loaders do.
func Source(name, customPath string) (string, error) {
	_, src, err := resolve(name, customPath, map[string]any{})
	return src, err
}

// resolve walks the search order: an explicit path, which must exist and
// parse; the user config directory; ./configs; the embedded default.
// Unreadable or unparsable files after the explicit path are skipped.
func resolve[T any](name, customPath string, fallback T) (T, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, customPath, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback, customPath, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	filename := name + ".yaml"
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, filepath.Join("configs", filename))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		cfg := fallback
		if yaml.Unmarshal(data, &cfg) == nil {
			return cfg, p, nil
		}
	}

	cfg := fallback
	if err := yaml.Unmarshal(GetDefaultYAML(name), &cfg); err != nil {
		return fallback, SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termgame", "configs", filename)
}
