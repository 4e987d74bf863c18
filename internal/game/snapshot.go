package game

import "strings"

// Snapshot is a read-only copy of everything the presentation layer needs.
type Snapshot struct {
	ID      string       `json:"id"`
	Guesses []Guess      `json:"guesses"`
	Buttons Buttons      `json:"buttons"`
	Letters LetterStates `json:"letterStates"`
	Win     WinState     `json:"winState"`
	Enabled bool         `json:"enabled"`
	// Answer is only filled in once the game has ended.
	Answer string `json:"answer,omitempty"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	gs := make([]Guess, len(s.guesses))
	for i, g := range s.guesses {
		gs[i] = g.clone()
	}
	snap := Snapshot{
		ID:      s.ID,
		Guesses: gs,
		Buttons: s.buttons,
		Letters: s.hints.clone(),
		Win:     s.win,
		Enabled: !s.win.Ended,
	}
	if s.win.Ended {
		snap.Answer = s.target
	}
	return snap
}

// Active returns the row being edited.
func (s Snapshot) Active() Guess {
	if len(s.Guesses) == 0 {
		return nil
	}
	return s.Guesses[len(s.Guesses)-1]
}

// Rejected reports whether the active row is showing a word-list rejection.
func (s Snapshot) Rejected() bool {
	a := s.Active()
	return len(a) > 0 && a[0].Status == StatusWordlistError
}

// ShareGrid renders scored rows as emoji squares, one row per line.
// Colorblind mode uses orange/blue instead of green/yellow.
func ShareGrid(guesses []Guess, colorblind bool) string {
	right, displaced := "🟩", "🟨"
	if colorblind {
		right, displaced = "🟧", "🟦"
	}
	var b strings.Builder
	for i, g := range guesses {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, l := range g {
			switch l.Status {
			case StatusRight:
				b.WriteString(right)
			case StatusDisplaced:
				b.WriteString(displaced)
			default:
				b.WriteString("⬛")
			}
		}
	}
	return b.String()
}
