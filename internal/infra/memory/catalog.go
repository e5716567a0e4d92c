package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"learnplay/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches the seed catalog from a backing store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) (domain.Catalog, error)
}

// CatalogCache caches the catalog with a TTL to avoid repeated backing
// store hits across restarts of the UI session.
type CatalogCache struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    domain.Catalog
	expiresAt time.Time
	filled    bool
}

func NewCatalogCache(loader CatalogLoader, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) GetCatalog(ctx context.Context) (domain.Catalog, error) {
	now := c.clock()

	c.mu.RLock()
	if c.filled && c.expiresAt.After(now) {
		catalog := c.cached
		c.mu.RUnlock()
		return catalog, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.filled && c.expiresAt.After(now) {
			catalog := c.cached
			c.mu.RUnlock()
			return catalog, nil
		}
		c.mu.RUnlock()

		catalog, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return domain.Catalog{}, err
		}

		c.mu.Lock()
		c.cached = catalog
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.filled = true
		c.mu.Unlock()
		return catalog, nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	return result.(domain.Catalog), nil
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticCatalogLoader serves a fixed in-memory catalog (default mode, demos, tests).
type StaticCatalogLoader struct {
	catalog domain.Catalog
}

func NewStaticCatalogLoader(catalog domain.Catalog) *StaticCatalogLoader {
	return &StaticCatalogLoader{catalog: catalog}
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	if len(l.catalog.Projects) == 0 {
		return domain.Catalog{}, domain.ErrCatalogNotFound
	}
	return l.catalog, nil
}
