// internal/game/types.go
//
// Core type definitions for the guess evaluator.
// Defines:
//   - Status: per-letter state of a tile (typing/right/wrong/displaced/wordlistError).
//   - Letter, Guess: the tiles of one attempt.
//   - Buttons: which inputs the player may currently use (the input gate).
//   - WinState: terminal game result.

package game

import "strings"

const (
	// WordSize is the number of letters in every guess and target word.
	WordSize = 5
	// MaxGuesses is the number of attempts a player gets.
	MaxGuesses = 6
)

// Status represents the state of a single letter tile.
// Possible values:
//   - "typing":        letter entered but not yet submitted.
//   - "right":         letter is in the target at this position.
//   - "wrong":         letter is not in the target (or all copies are accounted for).
//   - "displaced":     letter is in the target at another position.
//   - "wordlistError": the guess containing it was not an accepted word.
type Status string

const (
	StatusTyping        Status = "typing"
	StatusRight         Status = "right"
	StatusWrong         Status = "wrong"
	StatusDisplaced     Status = "displaced"
	StatusWordlistError Status = "wordlistError"
)

// Final reports whether s is one of the statuses produced by evaluation.
func (s Status) Final() bool {
	return s == StatusRight || s == StatusWrong || s == StatusDisplaced
}

// Letter is one tile: an uppercase A–Z character plus its status.
type Letter struct {
	Char   string `json:"letter"`
	Status Status `json:"state"`
}

// Guess is an ordered sequence of 0..WordSize letters.
type Guess []Letter

// Word joins the characters of the guess.
func (g Guess) Word() string {
	var b strings.Builder
	b.Grow(len(g))
	for _, l := range g {
		b.WriteString(l.Char)
	}
	return b.String()
}

// withStatus returns a copy of g with every letter set to st.
func (g Guess) withStatus(st Status) Guess {
	out := make(Guess, len(g))
	for i, l := range g {
		out[i] = Letter{Char: l.Char, Status: st}
	}
	return out
}

func (g Guess) clone() Guess {
	out := make(Guess, len(g))
	copy(out, g)
	return out
}

// Buttons is the input gate: which actions are legal for the active guess.
type Buttons struct {
	Letters bool `json:"letters"`
	Back    bool `json:"back"`
	Enter   bool `json:"enter"`
}

// buttonsFor derives the gate from the active guess length.
func buttonsFor(activeLen int) Buttons {
	return Buttons{
		Letters: activeLen < WordSize,
		Back:    activeLen > 0,
		Enter:   activeLen == WordSize,
	}
}

// WinState holds the end-of-game result. It changes at most once.
type WinState struct {
	Ended bool `json:"isGameEnded"`
	Won   bool `json:"isGameWon"`
}

// Outcome describes what a submission did.
type Outcome int

const (
	// OutcomeRejected means the guess was not in the word list.
	OutcomeRejected Outcome = iota
	// OutcomeContinue means the guess was scored and a new row was opened.
	OutcomeContinue
	// OutcomeWon means the guess matched the target.
	OutcomeWon
	// OutcomeLost means the last attempt was used without a match.
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeContinue:
		return "playing"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	}
	return "unknown"
}

// Dictionary is the acceptance list consulted on submit.
type Dictionary interface {
	IsAllowed(word string) bool
}
