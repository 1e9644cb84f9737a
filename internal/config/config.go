// Package config loads eventforms configuration from YAML, a .env file and
// EVENTFORMS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPaymentDelay mirrors the simulated gateway latency.
const DefaultPaymentDelay = 2 * time.Second

// Config is the root configuration.
type Config struct {
	Payment PaymentConfig `yaml:"payment"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Render  RenderConfig  `yaml:"render"`
}

// PaymentConfig configures the simulated payment gateway.
type PaymentConfig struct {
	// Delay is the artificial gateway latency. Unset means the default; an
	// explicit 0s approves immediately.
	Delay          *time.Duration `yaml:"delay"`
	FailureMessage string         `yaml:"failure_message"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// MetricsConfig toggles prometheus collection.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RenderConfig selects the HTML theme.
type RenderConfig struct {
	Theme   string `yaml:"theme"`
	Variant string `yaml:"variant"`
}

// PaymentDelay returns the configured delay or the default.
func (c *Config) PaymentDelay() time.Duration {
	if c.Payment.Delay == nil {
		return DefaultPaymentDelay
	}
	return *c.Payment.Delay
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads configuration from a YAML file. An empty path skips the file and
// builds the configuration from defaults and the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		data = []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies EVENTFORMS_* variables. Environment always wins
// over the file.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("EVENTFORMS_PAYMENT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("EVENTFORMS_PAYMENT_DELAY: %w", err)
		}
		cfg.Payment.Delay = &d
	}
	if v := os.Getenv("EVENTFORMS_PAYMENT_FAILURE_MESSAGE"); v != "" {
		cfg.Payment.FailureMessage = v
	}

	if v := os.Getenv("EVENTFORMS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("EVENTFORMS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("EVENTFORMS_METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("EVENTFORMS_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = enabled
	}

	if v := os.Getenv("EVENTFORMS_RENDER_THEME"); v != "" {
		cfg.Render.Theme = v
	}
	if v := os.Getenv("EVENTFORMS_RENDER_VARIANT"); v != "" {
		cfg.Render.Variant = v
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Payment.FailureMessage == "" {
		cfg.Payment.FailureMessage = "Payment failed. Please try again."
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Render.Theme == "" {
		cfg.Render.Theme = "default"
	}
	if cfg.Render.Variant == "" {
		cfg.Render.Variant = "light"
	}
}

func validate(cfg *Config) error {
	if cfg.Payment.Delay != nil && *cfg.Payment.Delay < 0 {
		return fmt.Errorf("payment.delay must not be negative, got %s", *cfg.Payment.Delay)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}
	return nil
}
