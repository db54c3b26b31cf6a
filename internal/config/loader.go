package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a config file, choosing the decoder by extension. An empty
// path yields a zero Config.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &cfg); decodeErr != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &cfg); decodeErr != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &cfg); decodeErr != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Find returns the first config file present under the user config
// directory ($XDG_CONFIG_HOME/lumen, falling back to ~/.config/lumen), or
// "" when none exists.
func Find(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	base := strings.TrimSpace(getenv("XDG_CONFIG_HOME"))
	if base == "" {
		home := strings.TrimSpace(getenv("HOME"))
		if home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	for _, name := range []string{"lumen.toml", "lumen.yaml", "lumen.yml", "lumen.json"} {
		p := filepath.Join(base, "lumen", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
