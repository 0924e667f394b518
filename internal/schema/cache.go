package schema

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc builds an index from a source.
type LoadFunc func(ctx context.Context, src Source) (*Index, error)

// Cache memoizes loaded indexes per source. Concurrent first calls for the
// same source share one load; a failed load is not remembered. A caller
// whose context ends returns early without cancelling the shared load.
type Cache struct {
	mu     sync.RWMutex
	loaded map[string]*Index
	group  singleflight.Group
	load   LoadFunc
}

// NewCache creates a cache backed by Load.
func NewCache() *Cache {
	return NewCacheWithLoader(Load)
}

// NewCacheWithLoader creates a cache with a custom load function.
func NewCacheWithLoader(load LoadFunc) *Cache {
	return &Cache{loaded: make(map[string]*Index), load: load}
}

// Get returns the index for src, loading it on first use.
func (c *Cache) Get(ctx context.Context, src Source) (*Index, error) {
	key := src.cacheKey()

	c.mu.RLock()
	ix, ok := c.loaded[key]
	c.mu.RUnlock()
	if ok {
		return ix, nil
	}

	// The shared load runs detached from any one caller's cancellation;
	// each caller stops waiting when its own context ends.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		c.mu.RLock()
		ix, ok := c.loaded[key]
		c.mu.RUnlock()
		if ok {
			return ix, nil
		}

		ix, err := c.load(loadCtx, src)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.loaded[key] = ix
		c.mu.Unlock()
		return ix, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Index), nil
	}
}

// Loaded reports how many indexes are cached.
func (c *Cache) Loaded() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.loaded)
}

var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

// DefaultCache returns the process-wide cache.
func DefaultCache() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewCache()
	})
	return defaultCache
}
