package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Julianoze/letreco/internal/config"
	"github.com/Julianoze/letreco/internal/daily"
	"github.com/Julianoze/letreco/internal/game"
	"github.com/Julianoze/letreco/internal/ui"
	"github.com/Julianoze/letreco/internal/words"
)

func newPlayCommand() *cobra.Command {
	var (
		random     bool
		colorblind bool
		theme      string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play today's word in the terminal",
		Long: `Play the daily word (or a random one with --random) in the terminal.

The daily word is the same for everyone and can be played once per day.
Results are saved locally and feed "letreco stats".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			settingsPath := config.ExpandPath(cfg.SettingsPath)
			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("colorblind") {
				settings.Colorblind = colorblind
			}
			if theme != "" {
				settings.Theme = theme
				if err := settings.Validate(); err != nil {
					return err
				}
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

			g, err := newLocalGame(ctx, results, catalog.Current(), settings.PlayerID, random)
			if err != nil {
				return err
			}
			if g == nil {
				st, err := results.PlayerStats(ctx, settings.PlayerID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "You already played today's word. Come back tomorrow!")
				fmt.Fprintln(cmd.OutOrStdout())
				printStats(cmd.OutOrStdout(), st)
				return nil
			}

			defer g.abandon()
			return ui.Run(ctx, ui.Config{
				Session:    g.session,
				Daily:      g.daily,
				Theme:      settings.Theme,
				Colorblind: settings.Colorblind,
				Stats: func() (daily.Stats, error) {
					return results.PlayerStats(context.Background(), settings.PlayerID)
				},
				OnColorblind: func(v bool) {
					settings.Colorblind = v
					if err := config.SaveSettings(settingsPath, settings); err != nil {
						log.Warn().Err(err).Msg("save settings")
					}
				},
			})
		},
	}

	cmd.Flags().BoolVar(&random, "random", false, "play a random word instead of the daily one")
	cmd.Flags().BoolVar(&colorblind, "colorblind", false, "use the colorblind palette")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default, high-contrast)")
	return cmd
}

type localGame struct {
	session *game.Session
	daily   *daily.Word
	record  func(game.Summary)
}

// abandon records a daily the player quit before finishing as a loss, so
// it cannot be replayed. Unfinished random games are dropped.
func (g *localGame) abandon() {
	if g.daily == nil || g.session.Ended() {
		return
	}
	sum := g.session.Summary()
	sum.EndedAt = time.Now()
	log.Info().Str("session", sum.SessionID).Int("guesses", sum.Attempts()).Msg("daily abandoned")
	g.record(sum)
}

// newLocalGame starts a daily or random game for player. It returns nil
// when today's daily has already been played.
func newLocalGame(ctx context.Context, results *daily.Store, list *words.List, player string, random bool) (*localGame, error) {
	now := time.Now()
	meta := daily.Result{PlayerID: player, Mode: daily.ModeRandom, Date: daily.DateKey(now), WordIndex: -1}

	var (
		target string
		word   *daily.Word
	)
	if random {
		target = list.Random()
	} else {
		pick := daily.Pick(now, cfg.DailySalt, cfg.Epoch(), list.Answers())
		if pick.Index < 0 {
			return nil, fmt.Errorf("no answers loaded")
		}
		played, err := results.AlreadyPlayed(ctx, player, pick.Date)
		if err != nil {
			return nil, err
		}
		if played {
			return nil, nil
		}
		target, word = pick.Word, &pick
		meta.Mode, meta.WordIndex = daily.ModeDaily, pick.Index
	}

	record := func(sum game.Summary) {
		res := meta
		res.SessionID = sum.SessionID
		res.Won = sum.Won
		res.Guesses = sum.Attempts()
		res.ElapsedMs = int(sum.Elapsed().Milliseconds())
		if _, err := results.InsertResult(context.Background(), res); err != nil {
			log.Error().Err(err).Str("session", sum.SessionID).Msg("record result")
			return
		}
		log.Info().Str("session", sum.SessionID).Bool("won", sum.Won).Int("guesses", res.Guesses).Msg("game ended")
	}
	sess, err := game.New(target, list, game.OnEnd(record))
	if err != nil {
		return nil, err
	}
	log.Info().Str("session", sess.ID).Str("mode", meta.Mode).Str("date", meta.Date).Msg("game started")
	return &localGame{session: sess, daily: word, record: record}, nil
}
