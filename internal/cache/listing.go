// Package cache keeps the full player and session listings in memory between
// mutations. Listings are dropped, never patched, when a change is announced.
package cache

import "sync"

// Key names a cached listing.
type Key string

const (
	KeyPlayers  Key = "players"
	KeySessions Key = "sessions"
)

type entry struct {
	value interface{}
	valid bool
	gen   uint64
}

// Listings is a process-local listing cache.
type Listings struct {
	mu      sync.RWMutex
	entries map[Key]*entry
}

// NewListings creates an empty cache.
func NewListings() *Listings {
	return &Listings{entries: make(map[Key]*entry)}
}

// Invalidate drops the given listings. A fill that started before the call
// does not store its result.
func (c *Listings) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		e := c.entry(k)
		e.value = nil
		e.valid = false
		e.gen++
	}
}

// Cached reports whether a listing is currently held.
func (c *Listings) Cached(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return ok && e.valid
}

// entry must be called with mu held for writing.
func (c *Listings) entry(k Key) *entry {
	e, ok := c.entries[k]
	if !ok {
		e = &entry{}
		c.entries[k] = e
	}
	return e
}

// Load returns a copy of the cached listing for key, calling fill on a miss.
// Errors from fill are returned and nothing is cached.
func Load[T any](c *Listings, key Key, fill func() ([]T, error)) ([]T, error) {
	c.mu.RLock()
	if e, ok := c.entries[key]; ok && e.valid {
		items := e.value.([]T)
		c.mu.RUnlock()
		return clone(items), nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	gen := c.entry(key).gen
	c.mu.Unlock()

	items, err := fill()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if e := c.entry(key); e.gen == gen {
		e.value = clone(items)
		e.valid = true
	}
	c.mu.Unlock()

	return items, nil
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
