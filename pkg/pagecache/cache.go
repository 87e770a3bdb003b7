// Package pagecache serves lazily generated pages for pairs outside the
// build-time plan. Concurrent requests for the same not-yet-rendered pair
// coalesce into a single in-flight render, and a page past its revalidation
// window is served stale immediately while a background refresh runs.
package pagecache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/arnolddental/pagegen/models"
)

// Renderer produces the page for one pair. It runs the same
// resolve-render-decide sequence the build-time emitter uses.
type Renderer func(ctx context.Context, pair models.PairKey) (*models.RenderedPage, error)

type entry struct {
	page    *models.RenderedPage
	fetched time.Time
}

// Cache is the per-pair stale-while-revalidate page cache.
type Cache struct {
	ttl    time.Duration
	render Renderer
	logger *slog.Logger

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
}

// New builds a cache with the given revalidation window.
func New(ttl time.Duration, render Renderer, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		ttl:     ttl,
		render:  render,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Get returns the page for a pair. A cached page inside its window is
// returned directly; a stale one is returned immediately with a refresh
// kicked off in the background; a missing one is rendered inline, with
// concurrent callers for the same key sharing one render.
func (c *Cache) Get(ctx context.Context, pair models.PairKey) (*models.RenderedPage, error) {
	key := pair.Key()

	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()

	if ok {
		if time.Since(e.fetched) > c.ttl {
			c.refreshInBackground(pair)
		}
		return e.page, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		page, err := c.render(ctx, pair)
		if err != nil {
			return nil, err
		}
		c.store(key, page)
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.RenderedPage), nil
}

// refreshInBackground re-renders a stale pair without blocking the caller.
// singleflight keys the refresh separately from first renders so a stale
// read never waits on it, and duplicate refreshes for one pair collapse.
func (c *Cache) refreshInBackground(pair models.PairKey) {
	key := "refresh:" + pair.Key()
	c.group.DoChan(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		page, err := c.render(ctx, pair)
		if err != nil {
			c.logger.Warn("Background refresh failed, keeping stale page", "pair", pair.Key(), "error", err)
			return nil, err
		}
		c.store(pair.Key(), page)
		c.logger.Debug("Background refresh complete", "pair", pair.Key())
		return page, nil
	})
}

func (c *Cache) store(key string, page *models.RenderedPage) {
	c.mu.Lock()
	c.entries[key] = &entry{page: page, fetched: time.Now()}
	c.mu.Unlock()
}

// Put seeds the cache with a pre-built page. The serve layer uses this to
// warm the cache from the build-time plan so planned pairs never render
// twice.
func (c *Cache) Put(pair models.PairKey, page *models.RenderedPage) {
	c.store(pair.Key(), page)
}

// Has reports whether a page is cached for the pair, fresh or stale.
func (c *Cache) Has(pair models.PairKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[pair.Key()]
	return ok
}

// Len reports how many pairs are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
