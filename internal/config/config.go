// Package config loads the optional host-layer YAML configuration for
// the sandbox and review clients (spec §2 host config layer), using
// the teacher's yaml.v3 dependency.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is entirely optional: cmd/transpile runs fine with a zero
// Config, since --sandbox/--review are opt-in flags.
type Config struct {
	Sandbox SandboxConfig `yaml:"sandbox"`
	Review  ReviewConfig  `yaml:"review"`
}

type SandboxConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type ReviewConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// Validate checks that any configured endpoints are well-formed
// absolute URLs and that a review model is set whenever a review
// endpoint is, grounded on the teacher's Compiler.Config.Validate
// shape. There is no constructor that calls it; the CLI's run command
// calls it right after Load, before the config is trusted.
func (c *Config) Validate(logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := validateEndpoint(c.Sandbox.Endpoint); err != nil {
		return fmt.Errorf("config: sandbox.endpoint: %w", err)
	}
	if err := validateEndpoint(c.Review.Endpoint); err != nil {
		return fmt.Errorf("config: review.endpoint: %w", err)
	}
	if c.Review.Endpoint != "" && c.Review.Model == "" {
		return fmt.Errorf("config: review.model must be set when review.endpoint is configured")
	}
	logger.Debug("config validated", "sandbox_endpoint", c.Sandbox.Endpoint, "review_endpoint", c.Review.Endpoint)
	return nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("not a valid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL, got %q", endpoint)
	}
	return nil
}

// Load reads and parses a YAML config file. A missing file is not an
// error — it returns a zero Config so callers can proceed with flag
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
