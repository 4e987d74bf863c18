// internal/config/config.go
//
// Process configuration read from the environment.
// A .env file in the working directory is loaded first (development), then
// variables are parsed into Config with their defaults.
//
// Environment variables:
//   PORT, LOG_LEVEL, LOG_PRETTY, LETRECO_LOG_FILE
//   DATABASE_PATH
//   DAILY_SALT, DAILY_EPOCH (YYYY-MM-DD of puzzle #1)
//   WORDS_ANSWERS_FILE, WORDS_ALLOWED_FILE, WORDS_WATCH
//   JWT_SECRET, SESSION_TTL, CLIENT_ORIGIN, NODE_ENV
//   LETRECO_SETTINGS (path of the player settings file)

package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Julianoze/letreco/internal/words"
)

const epochLayout = "2006-01-02"

// Config holds all process settings.
type Config struct {
	Port      string `env:"PORT" envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
	LogFile   string `env:"LETRECO_LOG_FILE"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/letreco.db"`

	DailySalt  string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	DailyEpoch string `env:"DAILY_EPOCH" envDefault:"2022-01-02"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`
	WatchWords  bool   `env:"WORDS_WATCH" envDefault:"false"`

	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Environment  string        `env:"NODE_ENV" envDefault:"development"`

	SettingsPath string `env:"LETRECO_SETTINGS" envDefault:"~/.config/letreco/settings.yaml"`
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv parses the environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values env parsing cannot.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if _, err := time.Parse(epochLayout, c.DailyEpoch); err != nil {
		return fmt.Errorf("invalid DAILY_EPOCH %q (want YYYY-MM-DD)", c.DailyEpoch)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// Epoch is the date of puzzle #1.
func (c *Config) Epoch() time.Time {
	t, _ := time.Parse(epochLayout, c.DailyEpoch)
	return t
}

// Level is the parsed log level.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Production reports NODE_ENV=production (secure cross-site cookies).
func (c *Config) Production() bool { return c.Environment == "production" }

// Words describes where word lists come from.
func (c *Config) Words() words.Sources {
	return words.Sources{AnswersFile: c.AnswersFile, AllowedFile: c.AllowedFile}
}
