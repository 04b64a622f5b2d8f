package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Tidewater")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Tidewater")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tidewater")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tidewater")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks values that would make the simulation meaningless.
func (c *Config) Validate() error {
	switch {
	case c.Water.Width <= 0 || c.Water.Depth <= 0:
		return fmt.Errorf("water size must be positive, got %gx%g", c.Water.Width, c.Water.Depth)
	case c.Water.SegmentsX < 1 || c.Water.SegmentsZ < 1:
		return fmt.Errorf("water segments must be at least 1, got %dx%d", c.Water.SegmentsX, c.Water.SegmentsZ)
	case c.Simulation.TickRate <= 0:
		return fmt.Errorf("tick_rate must be positive, got %v", c.Simulation.TickRate)
	case c.Simulation.Ticks < 0:
		return fmt.Errorf("ticks must not be negative, got %d", c.Simulation.Ticks)
	}
	return nil
}
