// internal/store/memory.go
//
// In-memory registry of live game sessions.
// Sessions are ephemeral by nature: nothing here survives a restart, and
// finished games are recorded separately by the daily results store.
//
// Characteristics:
//   - Entries keyed by session ID in a map guarded by a RWMutex.
//   - Each Entry serialises access to its Session with its own mutex, so a
//     key event from HTTP and one from a websocket never interleave.
//   - Sweep drops sessions idle for longer than a cutoff and hands them back
//     so the caller can settle unfinished games.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Julianoze/letreco/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Store defines the registry interface for live sessions.
type Store interface {
	// Save registers a session under meta and returns its entry.
	Save(ctx context.Context, s *game.Session, meta Meta) (*Entry, error)

	// Get retrieves an entry by session ID.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Sweep removes entries last used before cutoff and returns them.
	Sweep(ctx context.Context, cutoff time.Time) []*Entry
}

// Meta is what the transport layer knows about a session besides the game.
type Meta struct {
	PlayerID  string
	Mode      string
	Date      string
	WordIndex int
	Number    int
}

// Entry is one live session plus its lock.
type Entry struct {
	Meta Meta

	mu       sync.Mutex
	session  *game.Session
	now      func() time.Time
	lastUsed time.Time
}

// Do runs fn with exclusive access to the session.
func (e *Entry) Do(fn func(*game.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = e.now()
	return fn(e.session)
}

// Snapshot takes a consistent copy of the session state.
func (e *Entry) Snapshot() game.Snapshot {
	var snap game.Snapshot
	_ = e.Do(func(s *game.Session) error {
		snap = s.Snapshot()
		return nil
	})
	return snap
}

func (e *Entry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastUsed
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards entries map
	entries map[string]*Entry // keyed by Session.ID
	now     func() time.Time
}

// Option customises a memory store.
type Option func(*memory)

// WithClock sets the time source used to stamp entries. Sweep cutoffs
// must come from the same clock.
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.now = now }
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	m := &memory{entries: make(map[string]*Entry), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *memory) Save(ctx context.Context, s *game.Session, meta Meta) (*Entry, error) {
	e := &Entry{Meta: meta, session: s, now: m.now, lastUsed: m.now()}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = e
	return e, nil
}

func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) []*Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var swept []*Entry
	for id, e := range m.entries {
		if e.idleSince().Before(cutoff) {
			delete(m.entries, id)
			swept = append(swept, e)
		}
	}
	return swept
}
