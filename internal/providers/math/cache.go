package math

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/GriffinCanCode/polysolve/internal/format"
	"github.com/GriffinCanCode/polysolve/internal/shared/utils"
	"github.com/GriffinCanCode/polysolve/internal/types"
)

// ResultCache memoizes successful tool results. Every tool is a pure
// function of its params and output style, so entries never go stale;
// the TTL only bounds memory.
type ResultCache struct {
	store  *cache.Cache
	hasher *utils.Hasher
}

// NewResultCache creates a cache with the given entry lifetime
func NewResultCache(ttl, cleanup time.Duration) *ResultCache {
	return &ResultCache{
		store:  cache.New(ttl, cleanup),
		hasher: utils.DefaultHasher(),
	}
}

// Key derives the cache key for one call
func (c *ResultCache) Key(toolID string, style format.Style, params map[string]interface{}) (string, error) {
	digest, err := c.hasher.HashJSON(params)
	if err != nil {
		return "", err
	}
	return c.hasher.HashFields(toolID, style.String(), digest), nil
}

// Get returns a cached result
func (c *ResultCache) Get(key string) (*types.Result, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*types.Result), true
}

// Set stores a result with the default lifetime
func (c *ResultCache) Set(key string, result *types.Result) {
	c.store.Set(key, result, cache.DefaultExpiration)
}

// Len returns the number of live entries
func (c *ResultCache) Len() int {
	return c.store.ItemCount()
}

// Flush drops every entry
func (c *ResultCache) Flush() {
	c.store.Flush()
}
