package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newWordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words [word...]",
		Short: "Show word list sizes, or check whether words are accepted",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := openWords()
			if err != nil {
				return err
			}
			list := catalog.Current()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				a, g := list.Stats()
				if jsonOut {
					return json.NewEncoder(out).Encode(map[string]int{"answers": a, "allowed": g})
				}
				fmt.Fprintf(out, "answers: %d\nallowed: %d\n", a, g)
				return nil
			}

			type check struct {
				Word    string `json:"word"`
				Allowed bool   `json:"allowed"`
				Answer  bool   `json:"answer"`
			}
			checks := make([]check, 0, len(args))
			for _, w := range args {
				w = strings.ToLower(strings.TrimSpace(w))
				checks = append(checks, check{Word: w, Allowed: list.IsAllowed(w), Answer: list.IsAnswer(w)})
			}
			if jsonOut {
				return json.NewEncoder(out).Encode(checks)
			}
			for _, c := range checks {
				status := "not accepted"
				switch {
				case c.Answer:
					status = "accepted (answer)"
				case c.Allowed:
					status = "accepted"
				}
				fmt.Fprintf(out, "%-8s %s\n", c.Word, status)
			}
			return nil
		},
	}
	return cmd
}
