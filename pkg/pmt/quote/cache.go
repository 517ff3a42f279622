package quote

import (
	"context"
	"sync"
	"time"
)

// Cache decorates a Fetcher with a short-lived TTL+LRU cache so rapid
// repeated refreshes do not re-issue redundant external calls. Unavailable
// outcomes are cached too: a dead symbol stays dead for the TTL.
type Cache struct {
	next Fetcher
	ttl  time.Duration
	size int

	mu    sync.Mutex
	items map[string]cacheEntry
	order []string // oldest at index 0

	now func() time.Time
}

type cacheEntry struct {
	at time.Time
	q  Quote
	ok bool
}

func NewCache(next Fetcher, ttl time.Duration, size int) *Cache {
	return &Cache{next: next, ttl: ttl, size: size, items: make(map[string]cacheEntry), now: time.Now}
}

func (c *Cache) Fetch(ctx context.Context, spec Spec) (Quote, bool) {
	k := spec.Key()
	now := c.now()
	c.mu.Lock()
	if ent, ok := c.items[k]; ok {
		if now.Sub(ent.at) <= c.ttl {
			c.touchLocked(k)
			q, okv := ent.q, ent.ok
			c.mu.Unlock()
			return q, okv
		}
		delete(c.items, k)
		c.removeFromOrderLocked(k)
	}
	c.mu.Unlock()

	q, ok := c.next.Fetch(ctx, spec)

	c.mu.Lock()
	c.items[k] = cacheEntry{at: now, q: q, ok: ok}
	c.order = append(c.order, k)
	for len(c.items) > c.size && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		delete(c.items, old)
	}
	c.mu.Unlock()
	return q, ok
}

func (c *Cache) touchLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(append(c.order[:i], c.order[i+1:]...), k)
			return
		}
	}
	c.order = append(c.order, k)
}

func (c *Cache) removeFromOrderLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
