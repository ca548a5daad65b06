package service

import (
	"sync"
	"time"

	"medq/pkg/model"
)

type cachedEstimate struct {
	estimate  model.WaitEstimate
	expiresAt time.Time
}

// estimateCache pins a sampled wait estimate to its booking for a TTL.
// Expired entries are dropped lazily on access and by sweep.
type estimateCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cachedEstimate
}

func newEstimateCache(ttl time.Duration) *estimateCache {
	return &estimateCache{ttl: ttl, entries: make(map[string]cachedEstimate)}
}

func (c *estimateCache) get(id string, now time.Time) (model.WaitEstimate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return model.WaitEstimate{}, false
	}
	if !now.Before(e.expiresAt) {
		delete(c.entries, id)
		return model.WaitEstimate{}, false
	}
	return e.estimate, true
}

func (c *estimateCache) put(id string, estimate model.WaitEstimate, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = cachedEstimate{estimate: estimate, expiresAt: now.Add(c.ttl)}
}

func (c *estimateCache) sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}
