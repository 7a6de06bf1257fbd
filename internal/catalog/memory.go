package catalog

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
)

// memoryCache is the fallback cache when no Redis address is configured.
// Entries expire after a fixed TTL.
type memoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	product     *domain.Product
	products    []domain.Product
	collections []domain.Collection
	expiresAt   time.Time
}

func NewMemoryCache() Cache {
	return &memoryCache{
		ttl:     15 * time.Minute,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *memoryCache) GetProduct(_ context.Context, handle string) (*domain.Product, error) {
	entry, err := c.lookup(productKey(handle))
	if err != nil {
		return nil, err
	}
	return entry.product, nil
}

func (c *memoryCache) SetProduct(_ context.Context, product *domain.Product) error {
	c.put(productKey(product.Handle), memoryEntry{product: product})
	return nil
}

func (c *memoryCache) GetProducts(_ context.Context, key string) ([]domain.Product, error) {
	entry, err := c.lookup(listKey(key))
	if err != nil {
		return nil, err
	}
	return entry.products, nil
}

func (c *memoryCache) SetProducts(_ context.Context, key string, products []domain.Product) error {
	c.put(listKey(key), memoryEntry{products: products})
	return nil
}

func (c *memoryCache) GetCollections(_ context.Context) ([]domain.Collection, error) {
	entry, err := c.lookup("catalog:collections")
	if err != nil {
		return nil, err
	}
	return entry.collections, nil
}

func (c *memoryCache) SetCollections(_ context.Context, collections []domain.Collection) error {
	c.put("catalog:collections", memoryEntry{collections: collections})
	return nil
}

func (c *memoryCache) lookup(key string) (memoryEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return memoryEntry{}, ErrCacheMiss
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return memoryEntry{}, ErrCacheMiss
	}
	return entry, nil
}

func (c *memoryCache) put(key string, entry memoryEntry) {
	entry.expiresAt = c.now().Add(c.ttl)
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}
