package config

import (
	"fmt"
	"strconv"
	"strings"
)

// FromEnv reads overrides from the environment. getenv is injected so
// tests never touch the process environment.
//
// Recognized variables: LUMEN_TIMEOUT_MS, LUMEN_TTY, DEBUG.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	if raw := strings.TrimSpace(getenv("LUMEN_TIMEOUT_MS")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("LUMEN_TIMEOUT_MS: %w", err)
		}
		cfg.TimeoutMS = &v
	}
	if raw := strings.TrimSpace(getenv("LUMEN_TTY")); raw != "" {
		v := raw
		cfg.TTY = &v
	}
	if raw := getenv("DEBUG"); raw != "" {
		v := true
		cfg.Debug = &v
	}
	return cfg, nil
}
