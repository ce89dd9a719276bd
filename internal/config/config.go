// Package config loads the YAML application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// PresetConfig is one quick-set button: an open/start clock-time pair. The
// end time is derived from the start plus the default event duration.
type PresetConfig struct {
	Label string `yaml:"label" json:"label"`
	Open  string `yaml:"open" json:"open"`
	Start string `yaml:"start" json:"start"`
}

// CatalogConfig describes the event catalog source.
type CatalogConfig struct {
	// Source is a file path or an http(s) URL to the catalog CSV.
	Source string `yaml:"source" json:"source"`

	// RefreshCron schedules background cache refreshes for the venue
	// picker (cron expression or "@every" interval).
	RefreshCron string `yaml:"refresh" json:"refresh"`
}

// DisplayConfig holds countdown display tuning.
type DisplayConfig struct {
	// DurationMin is the default event length in minutes, used to derive
	// an end time from a preset's start time.
	DurationMin int `yaml:"duration_min" json:"duration_min"`

	// End-target thresholds, in minutes before the end time.
	EndWarningMin int `yaml:"end_warning_min" json:"end_warning_min"`
	EndDangerMin  int `yaml:"end_danger_min" json:"end_danger_min"`

	// Open/start-target thresholds, in seconds before the target.
	WarningSec int `yaml:"warning_sec" json:"warning_sec"`
	DangerSec  int `yaml:"danger_sec" json:"danger_sec"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" json:"listen"`

	// DataDir holds the SQLite database.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// StaticDir holds the display frontend files.
	StaticDir string `yaml:"static_dir" json:"static_dir"`

	Catalog CatalogConfig  `yaml:"catalog" json:"catalog"`
	Display DisplayConfig  `yaml:"display" json:"display"`
	Presets []PresetConfig `yaml:"presets" json:"presets"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:    ":8099",
		DataDir:   "/data",
		StaticDir: "./static",
		Catalog: CatalogConfig{
			Source:      "events.csv",
			RefreshCron: "@every 15m",
		},
		Display: DisplayConfig{
			DurationMin:   90,
			EndWarningMin: 5,
			EndDangerMin:  2,
			WarningSec:    60,
			DangerSec:     10,
		},
		Presets: []PresetConfig{},
	}
}

// Normalize fills in missing/zero values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.StaticDir == "" {
		c.StaticDir = def.StaticDir
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = def.Catalog.Source
	}
	if c.Catalog.RefreshCron == "" {
		c.Catalog.RefreshCron = def.Catalog.RefreshCron
	}
	if c.Display.DurationMin <= 0 {
		c.Display.DurationMin = def.Display.DurationMin
	}
	if c.Display.EndWarningMin <= 0 {
		c.Display.EndWarningMin = def.Display.EndWarningMin
	}
	if c.Display.EndDangerMin <= 0 {
		c.Display.EndDangerMin = def.Display.EndDangerMin
	}
	if c.Display.WarningSec <= 0 {
		c.Display.WarningSec = def.Display.WarningSec
	}
	if c.Display.DangerSec <= 0 {
		c.Display.DangerSec = def.Display.DangerSec
	}
	if c.Presets == nil {
		c.Presets = []PresetConfig{}
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()

	return cfg, nil
}
