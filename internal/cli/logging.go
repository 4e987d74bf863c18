package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Julianoze/letreco/internal/config"
)

// setupLogging configures the global zerolog logger. The terminal game owns
// the screen, so its logs go to a file; everything else logs to stderr.
// The returned func closes the log file, if one was opened.
func setupLogging(c *config.Config, toFile bool) (func(), error) {
	zerolog.SetGlobalLevel(c.Level())
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stderr
	closer := func() {}

	if toFile {
		path := logFilePath(c)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return closer, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closer, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	} else if c.LogPretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

// logFilePath is LETRECO_LOG_FILE, or letreco.log next to the database.
func logFilePath(c *config.Config) string {
	if c.LogFile != "" {
		return config.ExpandPath(c.LogFile)
	}
	return filepath.Join(filepath.Dir(c.DatabasePath), "letreco.log")
}
