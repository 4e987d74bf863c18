// Package ui is the terminal front end: a bubbletea program around one game
// session with a board, an on-screen keyboard and an end-of-game screen.
package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/Julianoze/letreco/internal/daily"
	"github.com/Julianoze/letreco/internal/game"
	"github.com/Julianoze/letreco/internal/input"
)

// Config is everything the program needs besides the terminal.
type Config struct {
	Session    *game.Session
	Daily      *daily.Word // nil for a random word
	Theme      string
	Colorblind bool

	// Stats loads the player's history once the game has ended.
	Stats func() (daily.Stats, error)
	// OnColorblind is told when the player toggles colorblind mode.
	OnColorblind func(bool)
}

type statsMsg struct {
	stats daily.Stats
	err   error
}

// Model is the bubbletea model for one game.
type Model struct {
	cfg    Config
	styles Styles

	overlay  bool
	stats    *daily.Stats
	statsErr error

	width    int
	height   int
	quitting bool
}

// NewModel creates a model for cfg.Session.
func NewModel(cfg Config) *Model {
	return &Model{
		cfg:    cfg,
		styles: NewStyles(ThemeByName(cfg.Theme), cfg.Colorblind),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statsMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("load stats")
			m.statsErr = msg.err
			return m, nil
		}
		m.stats = &msg.stats
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		if m.overlay {
			m.overlay = false
			return m, nil
		}
		if m.cfg.Session.Ended() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyF2:
		m.toggleColorblind()
		return m, nil
	}

	ev, ok := input.ParseKey(keyName(msg))
	if !ok {
		return m, nil
	}
	res := input.Dispatch(m.cfg.Session, ev)
	if !res.Applied {
		return m, nil
	}
	switch res.Outcome {
	case game.OutcomeWon, game.OutcomeLost:
		if ev.Kind == input.KindEnter {
			m.overlay = true
			return m, m.loadStats()
		}
	}
	return m, nil
}

func (m *Model) toggleColorblind() {
	cb := !m.styles.Colorblind()
	m.styles = NewStyles(m.styles.theme, cb)
	if m.cfg.OnColorblind != nil {
		m.cfg.OnColorblind(cb)
	}
}

func (m *Model) loadStats() tea.Cmd {
	if m.cfg.Stats == nil {
		return nil
	}
	load := m.cfg.Stats
	return func() tea.Msg {
		st, err := load()
		return statsMsg{stats: st, err: err}
	}
}

// keyName maps a terminal key to the names input.ParseKey understands.
func keyName(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		return input.KeyBackspace
	case tea.KeyEnter:
		return input.KeyEnter
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return string(msg.Runes[0])
		}
	}
	return ""
}

// View renders the board, or the end-of-game screen while it is open.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.cfg.Session.Snapshot()

	var sections []string
	sections = append(sections, m.styles.Title.Render(m.title()))
	if m.overlay {
		sections = append(sections, m.renderEndGame(snap))
	} else {
		sections = append(sections,
			m.renderGrid(snap),
			m.statusLine(snap),
			m.renderKeyboard(snap),
		)
	}
	sections = append(sections, m.styles.Muted.Render(m.help(snap)))

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m *Model) title() string {
	if m.cfg.Daily != nil {
		return fmt.Sprintf("LETRECO #%d", m.cfg.Daily.Number)
	}
	return "LETRECO"
}

func (m *Model) statusLine(snap game.Snapshot) string {
	switch {
	case snap.Rejected():
		return m.styles.Notice.Render("not in word list")
	case snap.Win.Won:
		return m.styles.Title.Render(fmt.Sprintf("solved in %d/%d", len(snap.Guesses), game.MaxGuesses))
	case snap.Win.Ended:
		return m.styles.Notice.Render("the word was " + snap.Answer)
	}
	return " "
}

func (m *Model) help(snap game.Snapshot) string {
	parts := []string{"f2 colorblind"}
	switch {
	case m.overlay:
		parts = append(parts, "esc close")
	case snap.Win.Ended:
		parts = append(parts, "esc quit")
	}
	parts = append(parts, "ctrl+c quit")
	return strings.Join(parts, " · ")
}

// Run starts the program and blocks until the player quits or ctx ends.
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
