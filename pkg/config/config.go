// Package config loads the client configuration for talking to an execution
// engine.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrAddressMustBeSet = errors.New("engine address must be set")
	ErrNegativeTimeout  = errors.New("default timeout must not be negative")
)

// Config is the top-level client configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig describes the engine endpoint and run defaults. A zero default
// timeout means wait indefinitely.
type EngineConfig struct {
	Address        string        `yaml:"address"`
	DefaultTimeout time.Duration `yaml:"default_timeout"`
}

// UnmarshalYAML accepts the timeout in the usual "30s" duration form.
func (e *EngineConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Address        string `yaml:"address"`
		DefaultTimeout string `yaml:"default_timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return errors.Wrap(err, "unable to parse engine config")
	}

	e.Address = raw.Address
	if raw.DefaultTimeout != "" {
		d, err := time.ParseDuration(raw.DefaultTimeout)
		if err != nil {
			return errors.Wrapf(err, "unable to parse default timeout %q", raw.DefaultTimeout)
		}
		e.DefaultTimeout = d
	}

	return nil
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config file %s", path)
	}

	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "unable to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Engine.Address == "" {
		return ErrAddressMustBeSet
	}
	if c.Engine.DefaultTimeout < 0 {
		return ErrNegativeTimeout
	}

	return nil
}
