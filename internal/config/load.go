package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cyra/evlog/internal/logging"
)

// Load reads, parses, and validates configuration from the provided path.
// Keys missing from the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks option combinations and fills in defaults.
func (c *Config) Validate() error {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	if c.Input.Follow && c.Input.Watch {
		return fmt.Errorf("input.follow and input.watch are mutually exclusive")
	}
	if c.Input.Follow && c.Input.Path == "" {
		return fmt.Errorf("input.path is required when input.follow is set")
	}
	if c.Input.Watch && c.Input.Path == "" {
		return fmt.Errorf("input.path is required when input.watch is set")
	}

	return nil
}
