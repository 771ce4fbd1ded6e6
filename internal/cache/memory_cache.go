package cache

import (
	"sync"
	"time"

	"github.com/kwatts/networth/internal/models"
)

// MemoryCache provides an in-memory L1 cache for quotes and news headlines
type MemoryCache struct {
	quotes   map[string]quoteEntry
	news     map[string]newsEntry
	quoteMu  sync.RWMutex
	newsMu   sync.RWMutex
	quoteTTL time.Duration
	newsTTL  time.Duration
}

type quoteEntry struct {
	price     float64
	fetchedAt time.Time
}

type newsEntry struct {
	items     []models.NewsItem
	fetchedAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(quoteTTL, newsTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		quotes:   make(map[string]quoteEntry),
		news:     make(map[string]newsEntry),
		quoteTTL: quoteTTL,
		newsTTL:  newsTTL,
	}
}

// GetQuote retrieves a cached price if fresh
func (c *MemoryCache) GetQuote(key string) (float64, bool) {
	c.quoteMu.RLock()
	defer c.quoteMu.RUnlock()

	entry, exists := c.quotes[key]
	if !exists {
		return 0, false
	}
	if time.Since(entry.fetchedAt) > c.quoteTTL {
		return 0, false
	}
	return entry.price, true
}

// SetQuote caches a price
func (c *MemoryCache) SetQuote(key string, price float64) {
	c.quoteMu.Lock()
	defer c.quoteMu.Unlock()

	c.quotes[key] = quoteEntry{
		price:     price,
		fetchedAt: time.Now(),
	}
}

// GetNews retrieves cached headlines for a symbol if fresh
func (c *MemoryCache) GetNews(symbol string) ([]models.NewsItem, bool) {
	c.newsMu.RLock()
	defer c.newsMu.RUnlock()

	entry, exists := c.news[symbol]
	if !exists {
		return nil, false
	}
	if time.Since(entry.fetchedAt) > c.newsTTL {
		return nil, false
	}
	return entry.items, true
}

// SetNews caches headlines for a symbol
func (c *MemoryCache) SetNews(symbol string, items []models.NewsItem) {
	c.newsMu.Lock()
	defer c.newsMu.Unlock()

	c.news[symbol] = newsEntry{
		items:     items,
		fetchedAt: time.Now(),
	}
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.quoteMu.Lock()
	c.quotes = make(map[string]quoteEntry)
	c.quoteMu.Unlock()

	c.newsMu.Lock()
	c.news = make(map[string]newsEntry)
	c.newsMu.Unlock()
}
