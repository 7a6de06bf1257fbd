package catalog

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// Cache holds catalog data fetched from the platform so repeated browsing
// does not refetch. Keys for product lists are chosen by the service.
type Cache interface {
	GetProduct(ctx context.Context, handle string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	GetProducts(ctx context.Context, key string) ([]domain.Product, error)
	SetProducts(ctx context.Context, key string, products []domain.Product) error
	GetCollections(ctx context.Context) ([]domain.Collection, error)
	SetCollections(ctx context.Context, collections []domain.Collection) error
}

var ErrCacheMiss = errors.New("cache miss")
