// Package config holds the toolkit's configuration, loaded from an
// optional YAML file with sane defaults for every field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all eternal-math configuration.
type Config struct {
	// Proof system settings
	Proof ProofConfig `yaml:"proof"`

	// Theorem archive settings
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProofConfig configures the verifier.
type ProofConfig struct {
	// MaxSteps bounds proof length; 0 disables the ceiling.
	MaxSteps int `yaml:"max_steps"`

	// Epsilon is the float equality tolerance used by statement
	// evaluation.
	Epsilon float64 `yaml:"epsilon"`
}

// StoreConfig configures the SQLite theorem archive.
type StoreConfig struct {
	// DatabasePath is where verified theorems are persisted.
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// DefaultConfig returns the defaults used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Proof: ProofConfig{
			MaxSteps: 1000,
			Epsilon:  1e-9,
		},
		Store: StoreConfig{
			DatabasePath: ".eternal/theorems.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file, layering it over the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Proof.Epsilon < 0 {
		return cfg, fmt.Errorf("config %s: epsilon must be non-negative", path)
	}
	if cfg.Proof.MaxSteps < 0 {
		return cfg, fmt.Errorf("config %s: max_steps must be non-negative", path)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
