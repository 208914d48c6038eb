package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version          int            `toml:"version"`
	ServerURL        string         `toml:"server_url"`
	TimeoutSeconds   int            `toml:"timeout_seconds"`
	PollIntervalSecs int            `toml:"poll_interval_seconds"`
	Search           SearchSettings `toml:"search"`
	UISettings       UISettings     `toml:"ui"`
}

// SearchSettings tune the palette search engine
type SearchSettings struct {
	PerCategoryLimit int `toml:"per_category_limit"`
	DebounceMillis   int `toml:"debounce_millis"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowFingerprints bool `toml:"show_fingerprints"`
	AutosaveOnExit   bool `toml:"autosave_on_exit"`
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PollInterval returns the catalog poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSecs) * time.Second
}

// Debounce returns the palette debounce interval as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMillis) * time.Millisecond
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:          1,
		ServerURL:        "http://127.0.0.1:8000",
		TimeoutSeconds:   15,
		PollIntervalSecs: 30,
		Search: SearchSettings{
			PerCategoryLimit: 5,
			DebounceMillis:   300,
		},
		UISettings: UISettings{
			ShowFingerprints: false,
			AutosaveOnExit:   true,
		},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = "."
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "rungrip", "config.toml")
}

// Load reads the config at path, falling back to defaults when the file
// does not exist. Unset fields take their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// normalize fills zero values left by partial config files.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.ServerURL == "" {
		c.ServerURL = def.ServerURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.PollIntervalSecs <= 0 {
		c.PollIntervalSecs = def.PollIntervalSecs
	}
	if c.Search.PerCategoryLimit <= 0 {
		c.Search.PerCategoryLimit = def.Search.PerCategoryLimit
	}
	if c.Search.DebounceMillis <= 0 {
		c.Search.DebounceMillis = def.Search.DebounceMillis
	}
}
