package core

import "fmt"

// ShadowCache memoizes Shadow results for the ghost-piece display. It is
// a purely derived auxiliary: entries may be dropped at any time without
// affecting correctness. The cache is size-bounded with oldest-first
// eviction on insert.
type ShadowCache struct {
	limit   int
	order   []string
	entries map[string]int
}

// NewShadowCache creates a cache that holds at most limit entries.
func NewShadowCache(limit int) *ShadowCache {
	if limit <= 0 {
		limit = 64
	}
	return &ShadowCache{
		limit:   limit,
		entries: make(map[string]int, limit),
	}
}

// Shadow returns the memoized resting row for the piece on the board,
// computing and caching it on a miss.
func (c *ShadowCache) Shadow(b *Board, p *Piece) int {
	key := fmt.Sprintf("%s:%d:%d:%d:%d", b.Fingerprint(), p.Kind, p.Rotation, p.X, p.Y)
	if y, ok := c.entries[key]; ok {
		return y
	}

	y := Shadow(b, p)
	if len(c.order) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = y
	c.order = append(c.order, key)
	return y
}

// Len returns the number of cached entries.
func (c *ShadowCache) Len() int {
	return len(c.entries)
}

// Invalidate discards all cached entries.
func (c *ShadowCache) Invalidate() {
	c.entries = make(map[string]int, c.limit)
	c.order = c.order[:0]
}
