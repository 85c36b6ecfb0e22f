package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Invoice defaults
	Invoice InvoiceConfig `yaml:"invoice"`

	// Autosave settings
	Autosave AutosaveConfig `yaml:"autosave"`

	// Logging
	Log LogConfig `yaml:"log"`
}

type StorageConfig struct {
	Path string `yaml:"path"` // Path to the encrypted snapshot store
}

type InvoiceConfig struct {
	DefaultDueDays int    `yaml:"default_due_days"` // Days until a new invoice is due
	NumberPrefix   string `yaml:"number_prefix"`    // Invoice number prefix (e.g., "INV")
}

type AutosaveConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"` // Draft autosave tick interval
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfigPath returns ~/.config/ledgercraft/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "ledgercraft", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "ledgercraft", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(homeDir, ".config", "ledgercraft", "ledgercraft.db"),
		},
		Invoice: InvoiceConfig{
			DefaultDueDays: 14,
			NumberPrefix:   "INV",
		},
		Autosave: AutosaveConfig{
			IntervalSeconds: 6,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// AutosaveInterval returns the configured tick interval as a duration
func (c *Config) AutosaveInterval() time.Duration {
	seconds := c.Autosave.IntervalSeconds
	if seconds <= 0 {
		seconds = 6
	}
	return time.Duration(seconds) * time.Second
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directories the app writes into
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(filepath.Dir(c.Storage.Path), 0700)
}
