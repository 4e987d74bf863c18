package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Port != "5175" {
		t.Errorf("Expected port 5175, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("Expected TTL 24h, got %s", cfg.SessionTTL)
	}
	if !cfg.Epoch().Equal(time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected epoch %s", cfg.Epoch())
	}
	if len(cfg.Words().Paths()) != 0 {
		t.Errorf("Expected embedded word lists, got %v", cfg.Words().Paths())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("WORDS_ALLOWED_FILE", "/tmp/allowed.txt")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Port != "8080" || cfg.LogLevel != "debug" || cfg.SessionTTL != 90*time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if got := cfg.Words().AllowedFile; got != "/tmp/allowed.txt" {
		t.Fatalf("allowed file = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}, wantErr: "invalid LOG_LEVEL"},
		{name: "bad port", env: map[string]string{"PORT": "http"}, wantErr: "invalid PORT"},
		{name: "bad epoch", env: map[string]string{"DAILY_EPOCH": "02/01/2022"}, wantErr: "invalid DAILY_EPOCH"},
		{name: "bad ttl", env: map[string]string{"SESSION_TTL": "0s"}, wantErr: "SESSION_TTL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letreco", "settings.yaml")
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.PlayerID == "" || s.Theme != "default" || s.Colorblind {
		t.Fatalf("defaults = %+v", s)
	}
	again, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.PlayerID != s.PlayerID {
		t.Fatalf("player id changed: %s -> %s", s.PlayerID, again.PlayerID)
	}
}

func TestSettingsRoundTripAndValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("player_id: p-1\ncolorblind: true\ntheme: high-contrast\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.PlayerID != "p-1" || !s.Colorblind || s.Theme != "high-contrast" {
		t.Fatalf("loaded %+v", s)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("theme: neon\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSettings(bad); err == nil || !strings.Contains(err.Error(), "invalid theme") {
		t.Fatalf("err = %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/x/settings.yaml"); got != filepath.Join(home, "x", "settings.yaml") {
		t.Fatalf("expand = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Fatalf("expand abs = %q", got)
	}
}
