package product

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a process-local read cache for catalog queries. Entries expire
// after the configured TTL and every entry costs 1 against MaxCost.
type Cache struct {
	c   *ristretto.Cache[string, any]
	ttl time.Duration
}

func NewCache(maxCost int64, ttl time.Duration) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
		// Costs are entry counts, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating product cache: %w", err)
	}

	return &Cache{c: c, ttl: ttl}, nil
}

func (c *Cache) get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	return c.c.Get(key)
}

func (c *Cache) set(key string, v any) {
	if c == nil {
		return
	}

	c.c.SetWithTTL(key, v, 1, c.ttl)
	c.c.Wait()
}

// Purge drops every cached entry.
func (c *Cache) Purge() {
	if c == nil {
		return
	}

	c.c.Clear()
}

func (c *Cache) Close() {
	if c == nil {
		return
	}

	c.c.Close()
}

func listKey(f Filter) string {
	return fmt.Sprintf("list|%s|%s|%d|%d", f.Category, f.Search, f.Page, f.PerPage)
}

const categoriesKey = "categories"
