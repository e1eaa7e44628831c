// Package config loads per-user settings for hookforge: revision pins for
// upstream hook repos and scan limits.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = ".hookforge"
	configFileName = "config.json"
)

// Config holds user-level settings. The zero value means "use defaults".
type Config struct {
	// RevisionPins overrides the built-in revision per repo URL.
	RevisionPins map[string]string `json:"revision_pins,omitempty"`
	// MaxFiles caps the number of files visited per scan.
	MaxFiles int `json:"max_files,omitempty"`
	// MaxFileSize caps the size in bytes of files eligible for content
	// probing.
	MaxFileSize int64 `json:"max_file_size,omitempty"`
}

// GetConfigPath returns the path of the user config file.
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(home, configDirName, configFileName)
}

// Load reads the user config. A missing file yields an empty Config; a
// malformed one is an error so bad settings never silently degrade a run.
func Load() (*Config, error) {
	return loadFrom(GetConfigPath())
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config back to the user config file, creating the
// directory if needed.
func (c *Config) Save() error {
	return c.saveTo(GetConfigPath())
}

func (c *Config) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: creating %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
