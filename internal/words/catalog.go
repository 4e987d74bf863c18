// internal/words/catalog.go
//
// Catalog is the live word source shared by every session.
// It wraps the current List behind a RWMutex so a reload can swap lists
// while games are being played. Sessions already running keep the target
// they started with; only the acceptance check sees the new list.

package words

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Catalog holds the current List and the sources it was loaded from.
type Catalog struct {
	mu   sync.RWMutex // guards list
	list *List
	src  Sources
}

// Open loads src and returns a Catalog serving it.
func Open(src Sources) (*Catalog, error) {
	l, err := Load(src)
	if err != nil {
		return nil, err
	}
	return &Catalog{list: l, src: src}, nil
}

// NewCatalog wraps an already-built List.
func NewCatalog(l *List) *Catalog {
	return &Catalog{list: l}
}

// Current returns the list in use right now.
func (c *Catalog) Current() *List {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.list
}

// Swap replaces the current list.
func (c *Catalog) Swap(l *List) {
	c.mu.Lock()
	c.list = l
	c.mu.Unlock()
}

// Reload re-reads the configured sources. On failure the old list stays.
func (c *Catalog) Reload() error {
	l, err := Load(c.src)
	if err != nil {
		return err
	}
	c.Swap(l)
	a, g := l.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("word lists reloaded")
	return nil
}

// IsAllowed implements game.Dictionary against the current list.
func (c *Catalog) IsAllowed(w string) bool { return c.Current().IsAllowed(w) }

// Stats reports counts for the current list.
func (c *Catalog) Stats() (int, int) { return c.Current().Stats() }
