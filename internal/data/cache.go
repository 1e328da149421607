package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"
)

// cacheEntry is one cached price API response.
type cacheEntry struct {
	prices    []SpotPrice
	expiresAt time.Time
}

// ResponseCache is an in-memory TTL cache for spot price responses. It
// exists so that repeated simulation runs over the same window during
// development do not hammer the public API. It is disabled unless
// ENABLE_PRICE_CACHE=true.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache instance, or nil when caching is
// disabled. TTL defaults to 1 hour and can be overridden with
// PRICE_CACHE_TTL (a Go duration string).
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_PRICE_CACHE") != "true" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("PRICE_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalCache = &ResponseCache{
			store: make(map[string]*cacheEntry),
			ttl:   ttl,
		}
		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached response if present and not expired.
func (c *ResponseCache) Get(key string) ([]SpotPrice, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.prices, true
}

// Set stores a response.
func (c *ResponseCache) Set(key string, prices []SpotPrice) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &cacheEntry{
		prices:    prices,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

// cleanup periodically drops expired entries.
func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// cacheKey builds a deterministic key from the query parameters.
func cacheKey(zone string, start, end time.Time) string {
	keyStr := fmt.Sprintf("%s:%s:%s",
		zone,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
