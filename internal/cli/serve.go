package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Julianoze/letreco/internal/httpserver"
	"github.com/Julianoze/letreco/internal/store"
)

func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if port == "" {
				port = cfg.Port
			}

			conn, results, err := openResults(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			catalog, err := openWords()
			if err != nil {
				return err
			}
			if cfg.WatchWords {
				go func() {
					if err := catalog.Watch(ctx); err != nil {
						log.Error().Err(err).Msg("word list watcher stopped")
					}
				}()
			}

			now := time.Now
			srv := httpserver.New(store.NewMemoryStore(store.WithClock(now)), results, catalog, httpserver.Options{
				Secret:        cfg.JWTSecret,
				ClientOrigin:  cfg.ClientOrigin,
				DailySalt:     cfg.DailySalt,
				Epoch:         cfg.Epoch(),
				SessionTTL:    cfg.SessionTTL,
				SecureCookies: cfg.Production(),
				Now:           now,
			})

			if cfg.JWTSecret == "dev_secret_change_me" {
				log.Warn().Msg("JWT_SECRET is the development default")
			}
			log.Info().Str("port", port).Msg("starting letreco server")
			return srv.Start(ctx, ":"+port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $PORT)")
	return cmd
}
