// Package config loads and saves the application configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AustinBrister/calendar"
)

// TimezoneAbbr holds the TZNAME abbreviations written into VTIMEZONE blocks.
type TimezoneAbbr struct {
	Standard string `yaml:"standard"`
	Daylight string `yaml:"daylight"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA zone identifier used for every local timestamp.
	Timezone string `yaml:"timezone"`

	TimezoneAbbr TimezoneAbbr `yaml:"timezone_abbr"`

	// ProductID is the PRODID written into every generated calendar.
	ProductID string `yaml:"product_id"`

	// DefaultEventDuration is the deadline event length in minutes when the
	// request does not supply one.
	DefaultEventDuration int `yaml:"default_event_duration"`

	// DatabasePath is the SQLite settings store location.
	DatabasePath string `yaml:"database_path"`

	// OutputDir is where generated .ics files are written.
	OutputDir string `yaml:"output_dir"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	core := calendar.DefaultConfig()
	return &Config{
		Timezone:             core.TimezoneID,
		TimezoneAbbr:         TimezoneAbbr{Standard: core.StandardAbbr, Daylight: core.DaylightAbbr},
		ProductID:            core.ProductID,
		DefaultEventDuration: core.DefaultDurationMinutes,
		DatabasePath:         "./data/calendar.db",
		OutputDir:            ".",
	}
}

// Normalize fills in missing values with defaults so partially filled config
// files still behave correctly.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.TimezoneAbbr.Standard == "" {
		c.TimezoneAbbr.Standard = d.TimezoneAbbr.Standard
	}
	if c.TimezoneAbbr.Daylight == "" {
		c.TimezoneAbbr.Daylight = d.TimezoneAbbr.Daylight
	}
	if c.ProductID == "" {
		c.ProductID = d.ProductID
	}
	if c.DefaultEventDuration <= 0 {
		c.DefaultEventDuration = d.DefaultEventDuration
	}
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
}

// Core maps the file configuration onto the generator's immutable config.
func (c *Config) Core() calendar.Config {
	return calendar.Config{
		TimezoneID:             c.Timezone,
		StandardAbbr:           c.TimezoneAbbr.Standard,
		DaylightAbbr:           c.TimezoneAbbr.Daylight,
		ProductID:              c.ProductID,
		DefaultDurationMinutes: c.DefaultEventDuration,
	}
}

// Load reads the YAML config at path. A missing file is not an error: the
// default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path atomically (temp file in the same directory, then
// rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".calendar-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
