package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/models"
)

// entry holds a cached crawl result with its creation timestamp.
type entry struct {
	result    *models.CrawlPageResult
	createdAt time.Time
}

// Cache is an in-memory cache of crawl results keyed by URL and options.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// New creates a Cache. A background goroutine evicts entries older than the
// configured TTL every 5 minutes.
func New(cfg config.CacheConfig) *Cache {
	c := newCache(cfg)
	go c.cleanupLoop()
	return c
}

func newCache(cfg config.CacheConfig) *Cache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1000
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &Cache{
		store:      make(map[string]*entry),
		maxEntries: cfg.MaxEntries,
		ttl:        cfg.TTL,
		now:        time.Now,
	}
}

// Key hashes the URL together with every option that changes the result.
func Key(url string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(url))
	for _, p := range parts {
		h.Write([]byte("|"))
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a cached result younger than maxAgeMs milliseconds.
// If maxAgeMs <= 0, no lookup is performed.
func (c *Cache) Get(key string, maxAgeMs int) (*models.CrawlPageResult, bool) {
	if maxAgeMs <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	age := c.now().Sub(e.createdAt)
	if age > time.Duration(maxAgeMs)*time.Millisecond || age > c.ttl {
		return nil, false
	}
	return e.result, true
}

// Set stores a result. Failed crawls are not cached. At capacity a random
// entry is evicted to make room.
func (c *Cache) Set(key string, res *models.CrawlPageResult) {
	if res == nil || res.Failed() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}
	c.store[key] = &entry{result: res, createdAt: c.now()}
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *Cache) evictExpired() {
	cutoff := c.now().Add(-c.ttl)
	c.mu.Lock()
	for k, e := range c.store {
		if e.createdAt.Before(cutoff) {
			delete(c.store, k)
		}
	}
	c.mu.Unlock()
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.evictExpired()
	}
}
