// Package config loads the audit configuration file and applies
// defaults. Command-line flags overlay whatever the file sets.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"bmcaudit/internal/pass"
	"bmcaudit/internal/runner"
	"bmcaudit/internal/strategy"
)

const DefaultFile = ".bmcaudit.yaml"

type Config struct {
	// Checker is the model checker binary to invoke.
	Checker string `yaml:"checker"`

	// TimeoutSeconds bounds each individual pass, not the whole run.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	Checks string `yaml:"checks"`
	Intent string `yaml:"intent"`
	Mode   string `yaml:"mode"`
}

func Default() *Config {
	return &Config{
		Checker:        "esbmc",
		TimeoutSeconds: 900,
		Checks:         "all",
		Intent:         "bug-hunting",
		Mode:           "seq",
	}
}

// Load reads path over the defaults. A missing file is fine when the
// caller asked for the default location.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultFile {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validate %s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Checker == "" {
		return errors.New("checker binary must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds must be positive")
	}
	if _, err := pass.ParseSet(c.Checks); err != nil {
		return err
	}
	if _, err := strategy.ParseIntent(c.Intent); err != nil {
		return err
	}
	if _, err := runner.ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CheckSet, IntentValue and ModeValue assume Validate passed.

func (c *Config) CheckSet() pass.Set {
	s, _ := pass.ParseSet(c.Checks)
	return s
}

func (c *Config) IntentValue() strategy.Intent {
	i, _ := strategy.ParseIntent(c.Intent)
	return i
}

func (c *Config) ModeValue() runner.Mode {
	m, _ := runner.ParseMode(c.Mode)
	return m
}
