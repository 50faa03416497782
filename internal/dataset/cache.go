package dataset

import (
	"context"
	"sync"
	"time"

	"drops-mcp/internal/stats"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	value   any
	expires time.Time
}

// CachedSource memoizes another source for a fixed TTL. Errors are not cached
// and concurrent misses on one key share a single upstream load.
type CachedSource struct {
	inner Source
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachedSource wraps inner with a TTL cache.
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedSource) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expires) {
		return nil, false
	}
	return entry.value, true
}

func (c *CachedSource) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expires: c.now().Add(c.ttl)}
}

func cached[T any](c *CachedSource, key string, load func() (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		log.Debug().Str("key", key).Msg("Cache hit")
		return v.(T), nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		log.Debug().Str("key", key).Msg("Cache miss")
		value, err := load()
		if err != nil {
			return nil, err
		}
		c.store(key, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if shared {
		log.Debug().Str("key", key).Msg("Shared in-flight load")
	}
	return v.(T), nil
}

func (c *CachedSource) Events(ctx context.Context) ([]stats.Event, error) {
	return cached(c, EventsFile, func() ([]stats.Event, error) {
		return c.inner.Events(ctx)
	})
}

func (c *CachedSource) Exclusions(ctx context.Context) (stats.ExclusionsMap, error) {
	return cached(c, ExclusionsFile, func() (stats.ExclusionsMap, error) {
		return c.inner.Exclusions(ctx)
	})
}

// QuestData shares the cached document between callers; treat it as read-only.
func (c *CachedSource) QuestData(ctx context.Context, eventID, questID string) (*stats.QuestData, error) {
	return cached(c, eventID+"/"+questID, func() (*stats.QuestData, error) {
		return c.inner.QuestData(ctx, eventID, questID)
	})
}

// Invalidate drops every cached document.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
