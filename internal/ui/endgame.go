package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Julianoze/letreco/internal/daily"
	"github.com/Julianoze/letreco/internal/game"
)

// ShareText is the spoiler-free summary a player pastes elsewhere:
// a header with puzzle number and score, a blank line, then the grid.
func ShareText(word *daily.Word, snap game.Snapshot, colorblind bool) string {
	score := "X"
	if snap.Win.Won {
		score = fmt.Sprint(len(snap.Guesses))
	}
	header := fmt.Sprintf("Letreco %s/%d", score, game.MaxGuesses)
	if word != nil {
		header = fmt.Sprintf("Letreco %d %s/%d", word.Number, score, game.MaxGuesses)
	}
	return header + "\n\n" + game.ShareGrid(snap.Guesses, colorblind)
}

func (m *Model) renderEndGame(snap game.Snapshot) string {
	var b strings.Builder
	if snap.Win.Won {
		b.WriteString(m.styles.Title.Render("You got it!"))
	} else {
		b.WriteString(m.styles.Notice.Render("Out of guesses"))
	}
	b.WriteString("\n\n")
	b.WriteString("The word was " + m.styles.Title.Render(snap.Answer))
	b.WriteString("\n\n")
	b.WriteString(ShareText(m.cfg.Daily, snap, m.styles.Colorblind()))
	b.WriteString("\n\n")
	b.WriteString(m.renderStats(snap))
	return m.styles.Overlay.Render(b.String())
}

func (m *Model) renderStats(snap game.Snapshot) string {
	switch {
	case m.statsErr != nil:
		return m.styles.Muted.Render("stats unavailable")
	case m.stats == nil:
		if m.cfg.Stats == nil {
			return ""
		}
		return m.styles.Muted.Render("loading stats…")
	}
	st := m.stats

	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-8s %-8s %-8s\n", "played", "win %", "streak", "best")
	fmt.Fprintf(&b, "%-8d %-8d %-8d %-8d\n\n", st.Played, st.WinRate(), st.CurrentStreak, st.MaxStreak)

	most := 1
	for _, n := range st.Distribution {
		if n > most {
			most = n
		}
	}
	for i, n := range st.Distribution {
		width := 1 + n*20/most
		bar := m.styles.Muted.Background(m.styles.theme.Wrong).Foreground(m.styles.theme.OnTile)
		if snap.Win.Won && i == len(snap.Guesses)-1 {
			bar = m.styles.Bar
		}
		label := fmt.Sprintf("%d", n)
		pad := width - lipgloss.Width(label)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(&b, "%d %s\n", i+1, bar.Render(strings.Repeat(" ", pad)+label))
	}
	return strings.TrimRight(b.String(), "\n")
}
