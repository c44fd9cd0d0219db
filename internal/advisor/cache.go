package advisor

import (
	"container/list"
	"context"
	"encoding/json"
	"sync"
	"time"
)

// adviceCache is an LRU cache with TTL and size-based eviction, keyed
// by the summary fingerprint.
type adviceCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem struct {
	key       string
	advice    Advice
	expiresAt time.Time
}

func newAdviceCache(maxSize int, ttl time.Duration) *adviceCache {
	return &adviceCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *adviceCache) get(key string) (Advice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		return Advice{}, false
	}

	item := elem.Value.(*cacheItem)
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return Advice{}, false
	}

	c.lru.MoveToFront(elem)
	return item.advice, true
}

func (c *adviceCache) set(key string, advice Advice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem{
		key:       key,
		advice:    advice,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		oldest := c.lru.Back()
		if oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *adviceCache) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem)
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

func (c *adviceCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Cached wraps an Advisor and reuses recent answers for identical
// summaries, so repeated analyze calls on an unchanged ledger do not
// hit the model again.
type Cached struct {
	inner Advisor
	cache *adviceCache
}

func NewCached(inner Advisor, maxSize int, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: newAdviceCache(maxSize, ttl),
	}
}

func (c *Cached) Generate(ctx context.Context, summary Summary) (Advice, error) {
	key := summaryKey(summary)
	if advice, ok := c.cache.get(key); ok {
		return advice, nil
	}

	advice, err := c.inner.Generate(ctx, summary)
	if err != nil {
		return Advice{}, err
	}

	c.cache.set(key, advice)
	return advice, nil
}

func summaryKey(s Summary) string {
	// Marshal errors cannot happen for Summary's field types.
	b, _ := json.Marshal(s)
	return string(b)
}
