package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"jvscan/internal/logging"
)

// Store reads and writes the settings record
type Store interface {
	Load() (*Settings, error)
	Save(*Settings) error
}

// JSONStore keeps settings in a JSON file
type JSONStore struct {
	path string
}

// NewJSONStore creates a store at path, or at DefaultPath when path is empty
func NewJSONStore(path string) *JSONStore {
	if path == "" {
		path = DefaultPath()
	}
	return &JSONStore{path: path}
}

// Path returns the settings file location
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields defaults.
func (s *JSONStore) Load() (*Settings, error) {
	cfg := Defaults()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Debugf("no settings at %s, using defaults", s.path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	// Files written by PowerShell's Set-Content -Encoding UTF8 start with a BOM
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", s.path, err)
	}

	cfg.sanitize()
	return cfg, nil
}

// Save writes the settings file, replacing it atomically
func (s *JSONStore) Save(cfg *Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// DefaultPath returns the settings file location under $XDG_CONFIG_HOME,
// falling back to ~/.config.
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "jvscan", "settings.json")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "jvscan", "settings.json")
}
