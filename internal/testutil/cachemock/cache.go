package cachemock

import (
	"context"
	"sync"
	"time"

	ucSchedule "emi-schedule/internal/usecase/schedule"
)

var _ ucSchedule.Cache = (*Cache)(nil)

// Cache is an in-memory schedule cache with call counters. Set GetErr/SetErr
// to simulate an unavailable backend.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte

	GetErr error
	SetErr error

	Gets, Sets int
	LastTTL    time.Duration
}

func New() *Cache { return &Cache{entries: map[string][]byte{}} }

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	v, ok := c.entries[key]
	if !ok {
		return nil, ucSchedule.ErrCacheMiss
	}
	return v, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets++
	c.LastTTL = ttl
	if c.SetErr != nil {
		return c.SetErr
	}
	if c.entries == nil {
		c.entries = map[string][]byte{}
	}
	c.entries[key] = value
	return nil
}

// Put seeds an entry directly.
func (c *Cache) Put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string][]byte{}
	}
	c.entries[key] = value
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	return out
}
