// internal/game/session.go
//
// Session is the state machine for one game.
// Responsibilities:
//   - Hold the guess buffer, keyboard hints, input gate and win state.
//   - Route every mutation through AppendLetter, Backspace and Submit.
//   - Notify end-of-game listeners exactly once.
//
// Notes:
//   - A Session is not safe for concurrent use; transports serialise access
//     (see store.Entry).
//   - Snapshot returns copies; callers never see the live slices or maps.

package game

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTarget   = errors.New("target must be 5 letters a-z")
	ErrInvalidLetter   = errors.New("letter must be a-z")
	ErrGameEnded       = errors.New("game finished")
	ErrLettersClosed   = errors.New("guess is full")
	ErrNothingToErase  = errors.New("guess is empty")
	ErrGuessIncomplete = errors.New("guess is incomplete")
)

// Summary is handed to end-of-game listeners.
type Summary struct {
	SessionID string
	Target    string
	Won       bool
	Guesses   []Guess
	StartedAt time.Time
	EndedAt   time.Time
}

// Attempts is the number of rows used.
func (s Summary) Attempts() int { return len(s.Guesses) }

// Elapsed is the time between the session starting and ending.
func (s Summary) Elapsed() time.Duration { return s.EndedAt.Sub(s.StartedAt) }

// Session holds the state of a single game.
type Session struct {
	ID string

	target  string
	dict    Dictionary
	guesses []Guess
	hints   LetterStates
	buttons Buttons
	win     WinState

	now       func() time.Time
	startedAt time.Time
	endedAt   time.Time
	onEnd     []func(Summary)
}

// Option customises a new Session.
type Option func(*Session)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID fixes the session identifier instead of generating one.
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// OnEnd registers fn to run once when the game ends.
func OnEnd(fn func(Summary)) Option {
	return func(s *Session) { s.onEnd = append(s.onEnd, fn) }
}

// New starts a game against target, checking submissions against dict.
func New(target string, dict Dictionary, opts ...Option) (*Session, error) {
	t := strings.ToUpper(strings.TrimSpace(target))
	if len(t) != WordSize || !isUpperAlpha(t) {
		return nil, ErrInvalidTarget
	}
	s := &Session{
		ID:      uuid.NewString(),
		target:  t,
		dict:    dict,
		guesses: []Guess{{}},
		hints:   LetterStates{},
		buttons: buttonsFor(0),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.startedAt = s.now()
	return s, nil
}

// AppendLetter adds ch as a typing letter to the active guess.
// Letters already tagged wordlistError keep that tag; only Backspace clears it.
func (s *Session) AppendLetter(ch string) error {
	if s.win.Ended {
		return ErrGameEnded
	}
	if !s.buttons.Letters {
		return ErrLettersClosed
	}
	c := strings.ToUpper(ch)
	if len(c) != 1 || !isUpperAlpha(c) {
		return ErrInvalidLetter
	}
	active := append(s.active().clone(), Letter{Char: c, Status: StatusTyping})
	s.replaceActive(active)
	return nil
}

// Backspace drops the last letter of the active guess and resets the rest
// to typing.
func (s *Session) Backspace() error {
	if s.win.Ended {
		return ErrGameEnded
	}
	if !s.buttons.Back {
		return ErrNothingToErase
	}
	active := s.active()
	s.replaceActive(active[:len(active)-1].withStatus(StatusTyping))
	return nil
}

// Submit evaluates the active guess.
//
// A guess outside the word list is marked wordlistError and left in place.
// An accepted guess is scored, folded into the keyboard hints and either
// ends the game (match, or last row used) or opens a new empty row.
func (s *Session) Submit() (Outcome, error) {
	if s.win.Ended {
		return s.outcome(), ErrGameEnded
	}
	if !s.buttons.Enter {
		return OutcomeContinue, ErrGuessIncomplete
	}

	active := s.active()
	if s.dict == nil || !s.dict.IsAllowed(strings.ToLower(active.Word())) {
		s.replaceActive(active.withStatus(StatusWordlistError))
		return OutcomeRejected, nil
	}

	validated, isRight := Evaluate(active, s.target)
	hints := s.hints.clone()
	hints.MergeGuess(validated)

	if len(s.guesses) >= MaxGuesses || isRight {
		s.replaceActive(validated)
		s.hints = hints
		s.win = WinState{Ended: true, Won: isRight}
		s.endedAt = s.now()
		s.fireEnd()
		return s.outcome(), nil
	}

	s.guesses[len(s.guesses)-1] = validated
	s.guesses = append(s.guesses, Guess{})
	s.buttons = buttonsFor(0)
	s.hints = hints
	return OutcomeContinue, nil
}

// Buttons returns the current input gate.
func (s *Session) Buttons() Buttons { return s.buttons }

// Win returns the current win state.
func (s *Session) Win() WinState { return s.win }

// Ended reports whether the game is over.
func (s *Session) Ended() bool { return s.win.Ended }

// Target returns the word being guessed.
func (s *Session) Target() string { return s.target }

// Summary describes the game so far.
func (s *Session) Summary() Summary {
	gs := make([]Guess, 0, len(s.guesses))
	for _, g := range s.guesses {
		if len(g) == WordSize && g[0].Status.Final() {
			gs = append(gs, g.clone())
		}
	}
	return Summary{
		SessionID: s.ID,
		Target:    s.target,
		Won:       s.win.Won,
		Guesses:   gs,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
	}
}

func (s *Session) active() Guess { return s.guesses[len(s.guesses)-1] }

// replaceActive swaps in a new active guess and recomputes the gate.
func (s *Session) replaceActive(g Guess) {
	s.guesses[len(s.guesses)-1] = g
	s.buttons = buttonsFor(len(g))
}

func (s *Session) outcome() Outcome {
	switch {
	case !s.win.Ended:
		return OutcomeContinue
	case s.win.Won:
		return OutcomeWon
	default:
		return OutcomeLost
	}
}

func (s *Session) fireEnd() {
	sum := s.Summary()
	for _, fn := range s.onEnd {
		fn(sum)
	}
}

// isUpperAlpha checks that a string consists only of uppercase A–Z.
func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
