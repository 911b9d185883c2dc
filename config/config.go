// Package config handles cogniloop configuration loading for applications
// that wire agents from YAML files rather than code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds wiring configuration for one agent.
type Config struct {
	Model     ModelConfig  `yaml:"model"`
	Memory    MemoryConfig `yaml:"memory"`
	Streaming bool         `yaml:"streaming"`
	LogLevel  string       `yaml:"log_level"`
}

// ModelConfig selects and parameterizes the model provider.
type ModelConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "anthropic" or "mock"
	Name        string  `yaml:"name"`
	APIKey      string  `yaml:"api_key"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens"`
}

// MemoryConfig selects the durable long-term log backend.
type MemoryConfig struct {
	// LogDriver is "file", "sqlite" or empty for process-memory-only.
	LogDriver string `yaml:"log_driver"`
	// LogPath is the file or database path for the durable log.
	LogPath string `yaml:"log_path"`
	// ContextWindow overrides the short-term window size (default 5).
	ContextWindow int `yaml:"context_window"`
}

// Default returns the baseline configuration applied before file values.
func Default() Config {
	return Config{
		Model: ModelConfig{
			Provider:    "openai",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		Memory:   MemoryConfig{ContextWindow: 5},
		LogLevel: "info",
	}
}

// Load reads and validates the YAML config at path, layered over Default.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enum-like fields against their allowed values.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case "openai", "anthropic", "mock":
	default:
		return fmt.Errorf("unknown model provider: %q", c.Model.Provider)
	}

	switch c.Memory.LogDriver {
	case "", "file", "sqlite":
	default:
		return fmt.Errorf("unknown memory log driver: %q", c.Memory.LogDriver)
	}
	if c.Memory.LogDriver != "" && c.Memory.LogPath == "" {
		return fmt.Errorf("memory log driver %q requires a log_path", c.Memory.LogDriver)
	}

	if c.Memory.ContextWindow <= 0 {
		return fmt.Errorf("context_window must be positive, got %d", c.Memory.ContextWindow)
	}

	return nil
}
