// Package cache stores raw country API payloads so repeated list and detail
// requests do not reach the upstream API. Misses are reported with
// sentinel.ErrNotFound; expired in-memory entries with sentinel.ErrExpired.
package cache

import (
	"context"
	"sync"
	"time"

	"worldranks/internal/countries/models"
	"worldranks/pkg/platform/sentinel"
	pstrings "worldranks/pkg/platform/strings"
)

// DefaultTTL matches the refresh cadence of the country list.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "worldranks:countries:"

// ListKey is the key of the full overview list.
func ListKey() string {
	return keyPrefix + "list"
}

func DetailKey(code models.CCA3) string {
	return keyPrefix + "detail:" + code.String()
}

// NeighboursKey is stable for a given code order.
func NeighboursKey(codes []models.CCA3) string {
	raw := make([]string, len(codes))
	for i, c := range codes {
		raw[i] = c.String()
	}
	return keyPrefix + "neighbours:" + pstrings.JoinDistinct(raw, ",")
}

type entry struct {
	payload  []byte
	storedAt time.Time
}

// MemoryCache is a process-local payload cache with a fixed TTL.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// MemoryOption configures a MemoryCache.
type MemoryOption func(*MemoryCache)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

func NewMemoryCache(ttl time.Duration, opts ...MemoryOption) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &MemoryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cached, ok := c.entries[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if c.now().Sub(cached.storedAt) >= c.ttl {
		return nil, sentinel.ErrExpired
	}
	return cached.payload, nil
}

// Set stores a copy of payload.
func (c *MemoryCache) Set(_ context.Context, key string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{payload: append([]byte(nil), payload...), storedAt: c.now()}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}
