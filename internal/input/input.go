// Package input maps key presses from any source onto session operations.
//
// A physical key, an on-screen button and a websocket message all become an
// Event; Dispatch applies it only when the session's input gate allows it.
package input

import (
	"errors"
	"strings"
	"sync"

	"github.com/Julianoze/letreco/internal/game"
)

// Key names as sent by keyboards and clients.
const (
	KeyBackspace = "Backspace"
	KeyEnter     = "Enter"
	KeyLetters   = "abcdefghijklmnopqrstuvwxyz"
)

// Kind is the operation an event asks for.
type Kind int

const (
	KindLetter Kind = iota
	KindBack
	KindEnter
)

func (k Kind) String() string {
	switch k {
	case KindLetter:
		return "letter"
	case KindBack:
		return "back"
	case KindEnter:
		return "enter"
	}
	return "unknown"
}

// Event is one key press.
type Event struct {
	Kind   Kind
	Letter string // uppercase, only for KindLetter
}

func Letter(ch string) Event { return Event{Kind: KindLetter, Letter: strings.ToUpper(ch)} }
func Back() Event            { return Event{Kind: KindBack} }
func Enter() Event           { return Event{Kind: KindEnter} }

// ParseKey maps a key name to an event. Names are matched case-insensitively;
// anything that is not a letter, backspace or enter is ignored.
func ParseKey(name string) (Event, bool) {
	switch {
	case strings.EqualFold(name, KeyBackspace):
		return Back(), true
	case strings.EqualFold(name, KeyEnter):
		return Enter(), true
	case len(name) == 1 && strings.Contains(KeyLetters, strings.ToLower(name)):
		return Letter(name), true
	}
	return Event{}, false
}

// Result reports what Dispatch did with an event.
type Result struct {
	Event   Event
	Applied bool
	Outcome game.Outcome // only meaningful for KindEnter
	Err     error        // why the event was not applied
}

// Dispatch applies ev to s if the input gate allows it.
func Dispatch(s *game.Session, ev Event) Result {
	r := Result{Event: ev, Outcome: game.OutcomeContinue}
	switch ev.Kind {
	case KindLetter:
		r.Err = s.AppendLetter(ev.Letter)
	case KindBack:
		r.Err = s.Backspace()
	case KindEnter:
		r.Outcome, r.Err = s.Submit()
	default:
		r.Err = ErrUnknownKey
	}
	r.Applied = r.Err == nil
	return r
}

var (
	ErrUnknownKey = errors.New("input: unknown key")
	ErrAttached   = errors.New("input: session already has a listener")
)

// Listener tracks which sessions have an input source attached, so a
// session never handles the same key stream twice.
type Listener struct {
	mu       sync.Mutex
	attached map[string]struct{}
}

func NewListener() *Listener {
	return &Listener{attached: make(map[string]struct{})}
}

// Attach claims session id. The returned detach func releases it and is
// safe to call more than once.
func (l *Listener) Attach(id string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.attached[id]; ok {
		return nil, ErrAttached
	}
	l.attached[id] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.attached, id)
			l.mu.Unlock()
		})
	}, nil
}

// Attached reports whether id currently has a listener.
func (l *Listener) Attached(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.attached[id]
	return ok
}
