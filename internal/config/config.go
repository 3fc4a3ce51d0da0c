// Package config loads cvsscalc settings from YAML.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/build-flow-labs/cvsscalc/cvss"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no config path is
// given explicitly.
const EnvPath = "CVSSCALC_CONFIG"

//go:embed default.yaml
var defaultYAML []byte

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds user-tunable settings.
type Config struct {
	Rounding string `yaml:"rounding"`
	Output   string `yaml:"output"`
	LogLevel string `yaml:"log_level"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var c Config
	if err := decode(bytes.NewReader(defaultYAML), &c); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return &c
}

// Load reads path over the defaults. An empty path falls back to
// $CVSSCALC_CONFIG and then to the defaults alone.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	defer f.Close()

	if err := decode(f, c); err != nil {
		return nil, fmt.Errorf("config.Load: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %s: %w", path, err)
	}
	c.Source = path
	return c, nil
}

func decode(r io.Reader, c *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first setting with an unsupported value.
func (c *Config) Validate() error {
	if _, err := c.RoundingPolicy(); err != nil {
		return err
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output format: %s", c.Output)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// RoundingPolicy returns the configured rounding policy.
func (c *Config) RoundingPolicy() (cvss.Rounding, error) {
	return cvss.ParseRounding(c.Rounding)
}

// Level returns the configured slog level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
}
