package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.DayStart != "06:00" || cfg.Schedule.DayEnd != "20:00" {
		t.Errorf("hour band = %s..%s", cfg.Schedule.DayStart, cfg.Schedule.DayEnd)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
	if cfg.AssistEnabled() {
		t.Error("assist must be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Schedule.DayStart != "06:00" {
			t.Errorf("day_start = %q", cfg.Schedule.DayStart)
		}
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[schedule]
day_start = "07:00"

[assist]
provider = "ollama"
base_url = "http://localhost:11434"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Schedule.DayStart != "07:00" {
			t.Errorf("day_start = %q, want 07:00", cfg.Schedule.DayStart)
		}
		if cfg.Schedule.DayEnd != "20:00" {
			t.Errorf("day_end = %q, default should survive", cfg.Schedule.DayEnd)
		}
		if !cfg.AssistEnabled() || cfg.Assist.Provider != "ollama" {
			t.Errorf("assist = %+v", cfg.Assist)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("DISPATCHR_DAY_END", "18:00")
		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Schedule.DayEnd != "18:00" {
			t.Errorf("day_end = %q, want 18:00", cfg.Schedule.DayEnd)
		}
	})

	t.Run("inverted hour band is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[schedule]\nday_start = \"18:00\"\nday_end = \"06:00\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "day_end") {
			t.Errorf("got %v, want day_end validation error", err)
		}
	})
}

func TestHourBand(t *testing.T) {
	cfg := Default()
	start, end := cfg.HourBand()
	if start != 6 || end != 20 {
		t.Errorf("band = %d..%d, want 6..20", start, end)
	}

	cfg.Schedule.DayEnd = "19:30"
	if _, end := cfg.HourBand(); end != 20 {
		t.Errorf("partial final hour should round up, got %d", end)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.UI.Theme = "latte"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.UI.Theme != "latte" {
		t.Errorf("theme = %q, want latte", loaded.UI.Theme)
	}
}
