// Package config loads the tilefish command configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	intImage "github.com/gogpu/tilefish/internal/image"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all tilefish configuration.
type Config struct {
	Size     int           `yaml:"size"`
	Debounce time.Duration `yaml:"debounce"`
	Format   string        `yaml:"format"`
	Retries  int           `yaml:"retries"`
	LogLevel string        `yaml:"log_level"`
	Serve    ServeConfig   `yaml:"serve"`
	Save     SaveConfig    `yaml:"save"`
}

// ServeConfig controls the browser display host.
type ServeConfig struct {
	Listen          string        `yaml:"listen"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SaveConfig controls writing tiles to disk.
type SaveConfig struct {
	Dir     string        `yaml:"dir"`
	Prefix  string        `yaml:"prefix"`
	Preview PreviewConfig `yaml:"preview"`
}

// PreviewConfig controls the optional repeat preview written next to tiles.
type PreviewConfig struct {
	Enabled bool `yaml:"enabled"`
	Cols    int  `yaml:"cols"`
	Rows    int  `yaml:"rows"`
	Scale   int  `yaml:"scale"`
}

// defaultDebounce applies when the debounce key is absent. An explicit zero
// disables the delay, so defaults() leaves Debounce alone.
const defaultDebounce = 10 * time.Millisecond

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{Debounce: defaultDebounce}
	c.defaults()
	return c
}

func (c *Config) defaults() {
	if c.Size <= 0 {
		c.Size = 256
	}
	if c.Format == "" {
		c.Format = "png"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Serve.Listen == "" {
		c.Serve.Listen = "127.0.0.1:8080"
	}
	if c.Serve.ShutdownTimeout <= 0 {
		c.Serve.ShutdownTimeout = 5 * time.Second
	}
	if c.Save.Dir == "" {
		c.Save.Dir = "."
	}
	if c.Save.Prefix == "" {
		c.Save.Prefix = "tilefish"
	}
	if c.Save.Preview.Cols <= 0 {
		c.Save.Preview.Cols = 3
	}
	if c.Save.Preview.Rows <= 0 {
		c.Save.Preview.Rows = 3
	}
	if c.Save.Preview.Scale <= 0 {
		c.Save.Preview.Scale = 1
	}
}

// Load reads a YAML config file and fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c := &Config{Debounce: defaultDebounce}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.defaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce %v is negative", ErrInvalid, c.Debounce)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries %d is negative", ErrInvalid, c.Retries)
	}
	if _, err := c.ImageFormat(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// ImageFormat returns the configured encoded format.
func (c *Config) ImageFormat() (intImage.Format, error) {
	return intImage.ParseFormat(c.Format)
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}
