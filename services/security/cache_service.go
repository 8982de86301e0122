package security

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is a small in-process TTL cache, constructed at startup and
// passed to whoever needs it. The auth middleware uses it to avoid
// re-verifying the same bearer token on every request.
type Cache struct {
	c *cache.Cache
}

func NewCache() *Cache {
	// Default expiration of 5 minutes, purge of expired items every 10
	return &Cache{
		c: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (cm *Cache) Insert(k string, x interface{}) {
	cm.c.Set(k, x, cache.DefaultExpiration)
}

func (cm *Cache) Get(key string) (interface{}, error) {
	val, found := cm.c.Get(key)
	if found {
		return val, nil
	}

	return nil, fmt.Errorf("value not found")
}

func (cm *Cache) Delete(key string) {
	cm.c.Delete(key)
}

func (cm *Cache) Stop() error {
	cm.c.Flush()
	return nil
}
