package menucache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const menuKey = "menu:listing"

// Cache holds the rendered menu listing with a configurable TTL and an
// explicit invalidation entry point. Its lifecycle is owned by the container
// that constructs the knowledge indexer; there is no package-level state.
type Cache struct {
	store *gocache.Cache
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		store: gocache.New(ttl, 2*ttl),
	}
}

// GetMenu returns the cached listing, if any.
func (c *Cache) GetMenu() (any, bool) {
	return c.store.Get(menuKey)
}

// SetMenu stores the listing with the default TTL.
func (c *Cache) SetMenu(menu any) {
	c.store.Set(menuKey, menu, gocache.DefaultExpiration)
}

// Invalidate drops the cached listing. Called after any catalog mutation or
// index rebuild.
func (c *Cache) Invalidate() {
	c.store.Delete(menuKey)
}
