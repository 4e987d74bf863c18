package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Julianoze/letreco/internal/config"
	"github.com/Julianoze/letreco/internal/daily"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your games played, streaks and guess distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(cfg.SettingsPath)
			if err != nil {
				return err
			}
			conn, results, err := openResults(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			st, err := results.PlayerStats(cmd.Context(), settings.PlayerID)
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					daily.Stats
					WinRate int `json:"winRate"`
				}{st, st.WinRate()})
			}
			printStats(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

// printStats writes a plain-text summary with a bar per guess count.
func printStats(w io.Writer, st daily.Stats) {
	fmt.Fprintf(w, "Played:          %d\n", st.Played)
	fmt.Fprintf(w, "Win %%:           %d\n", st.WinRate())
	fmt.Fprintf(w, "Current streak:  %d\n", st.CurrentStreak)
	fmt.Fprintf(w, "Max streak:      %d\n", st.MaxStreak)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Guess distribution:")

	most := 1
	for _, n := range st.Distribution {
		if n > most {
			most = n
		}
	}
	for i, n := range st.Distribution {
		fmt.Fprintf(w, "  %d %s %d\n", i+1, strings.Repeat("█", 1+n*30/most), n)
	}
}
