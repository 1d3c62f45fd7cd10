// Package config loads calview settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lululau/calview/internal/calendar"
	"github.com/lululau/calview/internal/datefmt"
)

// ErrInvalidYearRange is returned when min_year exceeds max_year.
var ErrInvalidYearRange = errors.New("min_year must not exceed max_year")

// Config is the complete calview configuration.
type Config struct {
	MinYear  int  `yaml:"min_year"`
	MaxYear  int  `yaml:"max_year"`
	WithTime bool `yaml:"with_time"`
	// DateFormat is a strftime-like pattern. Empty picks %Y-%m-%d, or
	// %Y-%m-%d %H:%M when WithTime is set.
	DateFormat   string `yaml:"date_format"`
	Lunar        bool   `yaml:"lunar"`
	HolidaysFile string `yaml:"holidays_file"`
	NoColor      bool   `yaml:"no_color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MinYear: calendar.DefaultMinYear,
		MaxYear: calendar.DefaultMaxYear,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "calview", "config.yaml"), nil
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks field combinations.
func (c *Config) Validate() error {
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("%w (%d > %d)", ErrInvalidYearRange, c.MinYear, c.MaxYear)
	}
	return nil
}

// Pattern compiles the configured date format.
func (c *Config) Pattern() datefmt.Pattern {
	switch {
	case c.DateFormat != "":
		return datefmt.Compile(c.DateFormat)
	case c.WithTime:
		return datefmt.Compile(datefmt.DefaultDateTime)
	default:
		return datefmt.Compile(datefmt.DefaultDate)
	}
}
