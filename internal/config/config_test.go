package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MinYear != 1900 || cfg.MaxYear != 2100 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Pattern().String() != "%Y-%m-%d" {
		t.Fatalf("Pattern=%q", cfg.Pattern().String())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "min_year: 2000\nwith_time: true\nlunar: true\nholidays_file: /tmp/h.json\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MinYear != 2000 || cfg.MaxYear != 2100 || !cfg.WithTime || !cfg.Lunar {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.HolidaysFile != "/tmp/h.json" {
		t.Fatalf("HolidaysFile=%q", cfg.HolidaysFile)
	}
	if cfg.Pattern().String() != "%Y-%m-%d %H:%M" {
		t.Fatalf("Pattern=%q", cfg.Pattern().String())
	}
}

func TestLoadExplicitFormatWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("with_time: true\ndate_format: \"%d/%m/%Y\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pattern().String() != "%d/%m/%Y" {
		t.Fatalf("Pattern=%q", cfg.Pattern().String())
	}
}

func TestLoadRejectsInvertedRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("min_year: 2050\nmax_year: 2000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidYearRange) {
		t.Fatalf("expected ErrInvalidYearRange, got %v", err)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("min_year: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.NoColor = true
	cfg.DateFormat = "%B %e, %Y"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("got %+v want %+v", got, cfg)
	}
}
