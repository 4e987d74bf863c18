package cli

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Julianoze/letreco/internal/config"
	"github.com/Julianoze/letreco/internal/daily"
	"github.com/Julianoze/letreco/internal/db"
	"github.com/Julianoze/letreco/internal/words"
)

var (
	cfg       *config.Config
	jsonOut   bool
	closeLogs = func() {}
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "letreco",
		Short: "Guess the five-letter word in six tries",
		Long: `letreco is a daily word game for the terminal and the web.

Every day has one secret five-letter word. Each guess must be a word from the
list; after it is scored, every letter shows whether it is in the right spot,
somewhere else in the word, or not in the word at all.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			closeLogs, err = setupLogging(cfg, cmd.Name() == "play")
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLogs()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print machine-readable output where supported")

	rootCmd.AddCommand(newPlayCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newWordsCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version == "dev" || version == "" {
				version = "development"
			}
			if commit == "none" || commit == "" {
				commit = "local-build"
			}
			if date == "unknown" || date == "" {
				date = "local-build"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "letreco %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// openResults opens the database and applies migrations.
func openResults(ctx context.Context) (*sql.DB, *daily.Store, error) {
	conn, err := db.OpenAndMigrate(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", cfg.DatabasePath, err)
	}
	return conn, daily.NewStore(conn), nil
}

// openWords loads the configured word lists.
func openWords() (*words.Catalog, error) {
	c, err := words.Open(cfg.Words())
	if err != nil {
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	a, g := c.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("word lists loaded")
	return c, nil
}
