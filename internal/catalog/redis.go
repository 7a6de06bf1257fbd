package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) GetProduct(ctx context.Context, handle string) (*domain.Product, error) {
	var product domain.Product
	if err := r.get(ctx, productKey(handle), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *RedisCache) SetProduct(ctx context.Context, product *domain.Product) error {
	return r.set(ctx, productKey(product.Handle), product)
}

func (r *RedisCache) GetProducts(ctx context.Context, key string) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.get(ctx, listKey(key), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *RedisCache) SetProducts(ctx context.Context, key string, products []domain.Product) error {
	return r.set(ctx, listKey(key), products)
}

func (r *RedisCache) GetCollections(ctx context.Context) ([]domain.Collection, error) {
	var collections []domain.Collection
	if err := r.get(ctx, "catalog:collections", &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *RedisCache) SetCollections(ctx context.Context, collections []domain.Collection) error {
	return r.set(ctx, "catalog:collections", collections)
}

func (r *RedisCache) get(ctx context.Context, key string, out interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal cached value failed: %w", err)
	}
	return nil
}

func (r *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cached value failed: %w", err)
	}
	// Jitter spreads expirations so a burst of traffic does not refetch
	// the whole catalog at once.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, key, payload, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func productKey(handle string) string {
	return fmt.Sprintf("catalog:product:%s", handle)
}

func listKey(key string) string {
	return fmt.Sprintf("catalog:list:%s", key)
}
