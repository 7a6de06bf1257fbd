package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storefront/internal/domain"
	"storefront/internal/gateway"
)

// Service answers product and collection browsing through the platform
// gateway, with a read-through cache. Cache failures are logged and never
// surfaced; the gateway remains the source of truth.
type Service struct {
	gateway gateway.Client
	cache   Cache
	logger  *log.Logger
}

func New(gw gateway.Client, cache Cache, logger *log.Logger) *Service {
	return &Service{gateway: gw, cache: cache, logger: logger}
}

func (s *Service) Products(ctx context.Context, limit int) ([]domain.Product, error) {
	key := fmt.Sprintf("products:%d", limit)
	if products, err := s.cache.GetProducts(ctx, key); err == nil {
		return products, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Printf("catalog: cache get %s: %v", key, err)
	}

	products, err := s.gateway.Products(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetProducts(ctx, key, products); err != nil {
		s.logger.Printf("catalog: cache set %s: %v", key, err)
	}
	return products, nil
}

func (s *Service) ProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	if product, err := s.cache.GetProduct(ctx, handle); err == nil {
		return product, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Printf("catalog: cache get product %s: %v", handle, err)
	}

	product, err := s.gateway.ProductByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Printf("catalog: cache set product %s: %v", handle, err)
	}
	return product, nil
}

func (s *Service) Collections(ctx context.Context) ([]domain.Collection, error) {
	if collections, err := s.cache.GetCollections(ctx); err == nil {
		return collections, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Printf("catalog: cache get collections: %v", err)
	}

	collections, err := s.gateway.Collections(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetCollections(ctx, collections); err != nil {
		s.logger.Printf("catalog: cache set collections: %v", err)
	}
	return collections, nil
}

func (s *Service) CollectionProducts(ctx context.Context, collectionID string) ([]domain.Product, error) {
	key := "collection:" + collectionID
	if products, err := s.cache.GetProducts(ctx, key); err == nil {
		return products, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Printf("catalog: cache get %s: %v", key, err)
	}

	products, err := s.gateway.CollectionProducts(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetProducts(ctx, key, products); err != nil {
		s.logger.Printf("catalog: cache set %s: %v", key, err)
	}
	return products, nil
}
