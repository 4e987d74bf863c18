package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Julianoze/letreco/internal/game"
)

// Icon is the glyph shown on an action key instead of a label.
type Icon int

const (
	IconNone Icon = iota
	IconBack
	IconEnter
)

func (i Icon) String() string {
	switch i {
	case IconNone:
		return "none"
	case IconBack:
		return "back"
	case IconEnter:
		return "enter"
	}
	return "unknown"
}

// renderIcon draws an icon. IconNone draws nothing.
func renderIcon(i Icon) string {
	switch i {
	case IconNone:
		return ""
	case IconBack:
		return "⌫"
	case IconEnter:
		return "✓"
	}
	return "?"
}

// keyboardRows is the on-screen layout; backspace closes the middle row and
// enter closes the bottom one.
var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// Button is one key on the on-screen keyboard.
type Button struct {
	Label   string
	Icon    Icon
	Action  bool
	State   game.Status // hint for letter keys, empty when unknown
	Enabled bool
}

// Content is what the key shows: its icon if it has one, else its label.
func (b Button) Content() string {
	if b.Icon != IconNone {
		return renderIcon(b.Icon)
	}
	return b.Label
}

// buildKeyboard lays out the keys for snap. Keys are disabled once the game
// has ended and otherwise follow the input gate.
func buildKeyboard(snap game.Snapshot) [][]Button {
	rows := make([][]Button, len(keyboardRows))
	for i, row := range keyboardRows {
		for _, r := range row {
			l := string(r)
			rows[i] = append(rows[i], Button{
				Label:   l,
				State:   snap.Letters[l],
				Enabled: snap.Enabled && snap.Buttons.Letters,
			})
		}
	}
	rows[1] = append(rows[1], Button{
		Icon:    IconBack,
		Action:  true,
		Enabled: snap.Enabled && snap.Buttons.Back,
	})
	rows[2] = append(rows[2], Button{
		Icon:    IconEnter,
		Action:  true,
		Enabled: snap.Enabled && snap.Buttons.Enter,
	})
	return rows
}

func (m *Model) renderKeyboard(snap game.Snapshot) string {
	var lines []string
	for _, row := range buildKeyboard(snap) {
		keys := make([]string, 0, len(row))
		for _, b := range row {
			keys = append(keys, m.styles.Key(b).Render(b.Content()))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderGrid draws all rows of the board, padding unused rows with blanks.
func (m *Model) renderGrid(snap game.Snapshot) string {
	rows := make([]string, 0, game.MaxGuesses)
	for i := 0; i < game.MaxGuesses; i++ {
		var g game.Guess
		if i < len(snap.Guesses) {
			g = snap.Guesses[i]
		}
		tiles := make([]string, game.WordSize)
		for j := range tiles {
			ch, st := " ", game.Status("")
			if j < len(g) {
				ch, st = g[j].Char, g[j].Status
			}
			tiles[j] = m.styles.Tile(st).Render(" " + ch + m.styles.marker(st))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return strings.Join(rows, "\n")
}
