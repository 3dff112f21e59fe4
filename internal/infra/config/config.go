// Package config provides configuration loading and storage path resolution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables understood by the resolver.
const (
	// EnvStoragePath overrides the resolved tickets file path entirely.
	EnvStoragePath = "PM_STORAGE_PATH"
	// EnvMode suffixes the config directory (project-manager-<mode>).
	EnvMode = "PM_MODE"
)

const (
	appDirName      = "project-manager"
	ticketsFileName = "tickets.json"
	configFileName  = "config.toml"
)

// Config holds the application configuration loaded from config.toml.
// Fields are ordered to minimize memory padding.
type Config struct {
	Mode    string  `toml:"mode"`
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
}

// Storage configures the ticket store location.
type Storage struct {
	Path string `toml:"path"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns the configuration used when no file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Log: Log{Level: "info"},
	}
}

// Loader loads configuration from the TOML config file.
type Loader struct {
	configHome string
}

// NewLoader creates a Loader resolving against the default config home
// (XDG_CONFIG_HOME, falling back to ~/.config).
func NewLoader() *Loader {
	return &Loader{configHome: defaultConfigHome()}
}

// NewLoaderWithHome creates a Loader with a custom config home.
// This is useful for testing.
func NewLoaderWithHome(configHome string) *Loader {
	return &Loader{configHome: configHome}
}

func defaultConfigHome() string {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// Load reads config.toml from the app directory, merged over defaults.
// A missing file yields the defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := NewDefaultConfig()
	if mode := os.Getenv(EnvMode); mode != "" {
		cfg.Mode = mode
	}

	path := filepath.Join(l.AppDir(cfg.Mode), configFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// The environment wins over the file for mode selection.
	if mode := os.Getenv(EnvMode); mode != "" {
		cfg.Mode = mode
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	return cfg, nil
}

// AppDir returns the application config directory for the given mode:
// <config-home>/project-manager or <config-home>/project-manager-<mode>.
func (l *Loader) AppDir(mode string) string {
	name := appDirName
	if mode != "" {
		name = appDirName + "-" + mode
	}
	return filepath.Join(l.configHome, name)
}

// ResolveStoragePath returns the tickets file path for the given config.
// Priority: PM_STORAGE_PATH env var, then storage.path from the config
// file, then the XDG-style default.
func (l *Loader) ResolveStoragePath(cfg *Config) string {
	if path := os.Getenv(EnvStoragePath); path != "" {
		return path
	}
	if cfg != nil && cfg.Storage.Path != "" {
		return cfg.Storage.Path
	}
	mode := ""
	if cfg != nil {
		mode = cfg.Mode
	}
	return filepath.Join(l.AppDir(mode), ticketsFileName)
}
