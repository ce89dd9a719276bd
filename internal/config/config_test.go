package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	def := DefaultConfig()
	if cfg.Listen != def.Listen || cfg.Catalog.RefreshCron != def.Catalog.RefreshCron {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() on malformed YAML should fail")
	}
}

func TestLoadPartialFileNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen: ":9000"
catalog:
  source: "https://example.com/events.csv"
presets:
  - label: "夜公演"
    open: "17:30"
    start: "18:30"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Catalog.Source != "https://example.com/events.csv" {
		t.Errorf("Catalog.Source = %q", cfg.Catalog.Source)
	}
	if cfg.Catalog.RefreshCron != "@every 15m" {
		t.Errorf("RefreshCron = %q, want default filled in", cfg.Catalog.RefreshCron)
	}
	if cfg.Display.DurationMin != 90 {
		t.Errorf("DurationMin = %d, want default 90", cfg.Display.DurationMin)
	}
	if len(cfg.Presets) != 1 || cfg.Presets[0].Label != "夜公演" {
		t.Errorf("Presets = %+v", cfg.Presets)
	}
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()

	def := DefaultConfig()
	if cfg.Listen != def.Listen || cfg.DataDir != def.DataDir || cfg.StaticDir != def.StaticDir {
		t.Errorf("Normalize() = %+v, want defaults", cfg)
	}
	if cfg.Display != def.Display {
		t.Errorf("Display = %+v, want %+v", cfg.Display, def.Display)
	}
	if cfg.Presets == nil {
		t.Error("Presets should be non-nil after Normalize")
	}
}
