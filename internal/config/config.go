package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmgilman/go/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ib-77/guarded/pkg/arith"
)

const DefaultPath = "guarded.yaml"

// Config holds the settings for the guarded CLI.
type Config struct {
	// Workers is the number of concurrent lines used by batch evaluation.
	Workers int `yaml:"workers"`

	Prompt PromptConfig `yaml:"prompt"`

	// Defaults maps an operation name to the value substituted when that
	// operation fails with an invalid argument in prompt mode.
	Defaults map[string]string `yaml:"defaults,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

type PromptConfig struct {
	// MaxAttempts bounds how many times one argument is asked for when the
	// input does not parse.
	MaxAttempts int `yaml:"max_attempts"`
	// Echo prints prompts even when stdin is not a terminal.
	Echo bool `yaml:"echo"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Workers: 4,
		Prompt: PromptConfig{
			MaxAttempts: 3,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to parse config")
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GUARDED_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, errors.CodeInvalidConfig, "GUARDED_WORKERS must be an integer")
		}
		c.Workers = n
	}
	if v := os.Getenv("GUARDED_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, errors.CodeInvalidConfig, "GUARDED_MAX_ATTEMPTS must be an integer")
		}
		c.Prompt.MaxAttempts = n
	}
	if v := os.Getenv("GUARDED_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate rejects settings the CLI cannot run with.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.Newf(errors.CodeInvalidConfig, "workers must be >= 1, got %d", c.Workers)
	}
	if c.Prompt.MaxAttempts < 1 {
		return errors.Newf(errors.CodeInvalidConfig, "prompt.max_attempts must be >= 1, got %d", c.Prompt.MaxAttempts)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	for name := range c.Defaults {
		if _, ok := arith.Lookup(name); !ok {
			return errors.WithContext(
				errors.Newf(errors.CodeInvalidConfig, "default given for unknown operation %q", name),
				"operation", name)
		}
	}
	return nil
}

// Level parses the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(c.Logging.Level))
	if err != nil {
		return lvl, errors.Wrap(err, errors.CodeInvalidConfig, "invalid logging.level")
	}
	return lvl, nil
}

// Default returns the fallback value configured for an operation.
func (c *Config) Default(op string) (string, bool) {
	for name, v := range c.Defaults {
		if strings.EqualFold(name, op) {
			return v, true
		}
	}
	return "", false
}
