package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Themes accepted in the settings file.
var Themes = []string{"default", "high-contrast"}

// Settings are per-player preferences stored as YAML.
type Settings struct {
	PlayerID   string `yaml:"player_id"`
	Colorblind bool   `yaml:"colorblind"`
	Theme      string `yaml:"theme"`
}

// DefaultSettings returns settings for a first run.
func DefaultSettings() *Settings {
	return &Settings{Theme: "default"}
}

// Validate checks the theme name.
func (s *Settings) Validate() error {
	for _, t := range Themes {
		if s.Theme == t {
			return nil
		}
	}
	return fmt.Errorf("invalid theme: %s (must be one of: %s)", s.Theme, strings.Join(Themes, ", "))
}

// LoadSettings reads path. A missing file yields defaults with a fresh
// player ID, and the file is written so the ID sticks.
func LoadSettings(path string) (*Settings, error) {
	path = ExpandPath(path)
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.PlayerID = uuid.NewString()
		if err := SaveSettings(path, s); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if s.Theme == "" {
		s.Theme = "default"
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.PlayerID == "" {
		s.PlayerID = uuid.NewString()
		if err := SaveSettings(path, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SaveSettings writes s to path, creating parent directories.
func SaveSettings(path string, s *Settings) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
