// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pablosanchis/dispatchr/internal/dateutil"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	UI       UIConfig       `toml:"ui"`
	Storage  StorageConfig  `toml:"storage"`
	Assist   AssistConfig   `toml:"assist"`
}

// ScheduleConfig holds the visible hour band of the board.
type ScheduleConfig struct {
	DayStart string `toml:"day_start"` // e.g., "06:00"
	DayEnd   string `toml:"day_end"`   // e.g., "20:00"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha" or "latte"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// AssistConfig holds the optional day-brief LLM settings. An empty
// provider disables the feature.
type AssistConfig struct {
	Provider string `toml:"provider"` // "openai" or "ollama"
	Model    string `toml:"model"`    // e.g., "gpt-4o-mini"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart: "06:00",
			DayEnd:   "20:00",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Assist: AssistConfig{
			Provider: "",
			Model:    "gpt-4o-mini",
			BaseURL:  "",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dispatchr.db"
	}
	return filepath.Join(home, ".local", "share", "dispatchr", "dispatchr.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "dispatchr", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DISPATCHR_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("DISPATCHR_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("DISPATCHR_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("DISPATCHR_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DISPATCHR_ASSIST_PROVIDER"); v != "" {
		cfg.Assist.Provider = v
	}
	if v := os.Getenv("DISPATCHR_ASSIST_MODEL"); v != "" {
		cfg.Assist.Model = v
	}
	if v := os.Getenv("DISPATCHR_ASSIST_BASE_URL"); v != "" {
		cfg.Assist.BaseURL = v
	}
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	startH, startM, err := dateutil.ParseClock(c.Schedule.DayStart)
	if err != nil {
		return fmt.Errorf("day_start: %w", err)
	}
	endH, endM, err := dateutil.ParseClock(c.Schedule.DayEnd)
	if err != nil {
		return fmt.Errorf("day_end: %w", err)
	}
	if endH*60+endM <= startH*60+startM {
		return fmt.Errorf("day_end %q must be after day_start %q", c.Schedule.DayEnd, c.Schedule.DayStart)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("db_path cannot be empty")
	}
	return nil
}

// HourBand returns the visible hour band as whole hours. Minutes in the
// configured clock values are ignored; the board renders hour rows.
func (c *Config) HourBand() (startHour, endHour int) {
	sh, _, _ := dateutil.ParseClock(c.Schedule.DayStart)
	eh, em, _ := dateutil.ParseClock(c.Schedule.DayEnd)
	if em > 0 {
		eh++
	}
	return sh, eh
}

// AssistEnabled returns true when a day-brief provider is configured.
func (c *Config) AssistEnabled() bool {
	return c.Assist.Provider != ""
}

// Save writes the config to the given path, creating directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
