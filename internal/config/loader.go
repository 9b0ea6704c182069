package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvPrefix prefixes environment overrides, e.g. MASKBRUSH_BRUSH_SIZE or
// MASKBRUSH_SELECTION_COLOR.
const EnvPrefix = "MASKBRUSH_"

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
	Getenv       func(string) string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
		Getenv:       os.Getenv,
	}
}

// Load reads the configuration file if one exists and applies environment
// overrides on top.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if cfg, err = Parse(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var envKeys = []string{
	"theme",
	"save_dir",
	"brush_size",
	"tool",
	"selection.color",
	"selection.coverage",
	"refine.brush_size",
	"refine.spacing",
	"generate.command",
	"generate.variants",
}

func (l *Loader) applyEnv(cfg *Config) error {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, key := range envKeys {
		name := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		v := strings.TrimSpace(getenv(name))
		if v == "" {
			continue
		}
		if err := cfg.Set(key, v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// SavePath returns where `config save` writes: the file currently in use,
// or the XDG location when there is none.
func (l *Loader) SavePath() string {
	if p := l.GetConfigPath(); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "maskbrush", "config.rc")
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".maskbrushrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	home, _ := os.UserHomeDir()
	xdgPath := filepath.Join(home, ".config", "maskbrush", "config.rc")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ""
}
