// Package config handles YAML configuration parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// DefaultRefreshInterval is roughly 30 display updates per second.
const DefaultRefreshInterval = 33 * time.Millisecond

const maxRefreshInterval = time.Second

// Config is the root configuration structure.
type Config struct {
	RefreshInterval time.Duration       `yaml:"refresh_interval"`
	Output          string              `yaml:"output"`
	Keys            map[string][]string `yaml:"keys,omitempty"` // action name -> keys
	LapLimit        LapLimit            `yaml:"lap_limit,omitempty"`
}

// LapLimit throttles lap recording. PerSecond <= 0, the default, disables
// it so every lap press is recorded.
type LapLimit struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		RefreshInterval: DefaultRefreshInterval,
		Output:          OutputText,
	}
}

// LoadConfig reads and parses a YAML configuration file. Fields missing
// from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return cfg, nil
}

// Validate checks field ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.RefreshInterval <= 0 || c.RefreshInterval > maxRefreshInterval {
		errs = append(errs, fmt.Errorf("refresh_interval must be in (0, %v], got %v", maxRefreshInterval, c.RefreshInterval))
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		errs = append(errs, fmt.Errorf("output must be %q or %q, got %q", OutputText, OutputJSON, c.Output))
	}
	if c.LapLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("lap_limit.per_second must be >= 0, got %v", c.LapLimit.PerSecond))
	}
	if c.LapLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("lap_limit.burst must be >= 0, got %d", c.LapLimit.Burst))
	}
	return errors.Join(errs...)
}
