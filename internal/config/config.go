// Package config loads and manages pulseline configuration.
// Configuration source priority (highest to lowest):
// 1. Environment variables (PULSELINE_PLAIN, PULSELINE_DEBUG, PULSELINE_TIMEOUT)
// 2. Config file path specified via --config flag
// 3. ~/.config/pulseline/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration structure for pulseline.
type Config struct {
	// Plain switches severity decoration to text markers ([OK]/[WARN]/[CRIT])
	// instead of colored glyphs.
	Plain bool `yaml:"plain"`

	// Debug writes diagnostic traces to stderr. Stdout only ever carries
	// the status line itself.
	Debug bool `yaml:"debug"`

	// TimeoutSeconds bounds each external command invocation (git).
	// 0 or negative falls back to 1.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// TokenBudget is the assumed token allowance per usage window.
	TokenBudget int `yaml:"token_budget"`

	// ContextBudget is the assumed context-window size in tokens.
	ContextBudget int `yaml:"context_budget"`

	// ActivityMultiplier converts activity bytes into estimated tokens.
	ActivityMultiplier int `yaml:"activity_multiplier"`

	// FallbackRate is the assumed drain in tokens per hour when no
	// activity data is available.
	FallbackRate int `yaml:"fallback_rate"`

	// ScanDirs overrides the directories scanned for session activity.
	// Empty uses the standard ~/.claude artifact directories.
	ScanDirs []string `yaml:"scan_dirs"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Plain:              false,
		Debug:              false,
		TimeoutSeconds:     1,
		TokenBudget:        200000,
		ContextBudget:      200000,
		ActivityMultiplier: 2,
		FallbackRate:       15000,
	}
}

// Load reads the config file and merges environment variable overrides.
// A missing file yields the defaults; a malformed one is an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Determine config file path
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".config", "pulseline", "config.yaml")
		}
	}

	// Read config file (use defaults if not found)
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// Timeout returns the external-call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	s := c.TimeoutSeconds
	if s <= 0 {
		s = 1
	}
	return time.Duration(s) * time.Second
}

// applyEnvOverrides applies environment variable overrides to the config.
// Values that do not parse are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PULSELINE_PLAIN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Plain = b
		}
	}
	if v := os.Getenv("PULSELINE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := os.Getenv("PULSELINE_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
}
