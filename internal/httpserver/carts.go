package httpserver

import (
	"context"
	"log"
	"sync"

	"storefront/internal/cart"
	"storefront/internal/gateway"
	"storefront/internal/session"
)

// CartRegistry hands out one cart manager per device, constructing and
// restoring it on first use. Managers stay resident for the life of the
// process; persisted state survives restarts through the session store.
type CartRegistry struct {
	logger  *log.Logger
	gateway gateway.Client
	store   session.Store

	mu       sync.Mutex
	managers map[string]*cart.Manager
}

func NewCartRegistry(logger *log.Logger, gw gateway.Client, store session.Store) *CartRegistry {
	return &CartRegistry{
		logger:   logger,
		gateway:  gw,
		store:    store,
		managers: make(map[string]*cart.Manager),
	}
}

// For returns the device's cart manager, creating it on first use. When a
// restored manager knows a checkout id, its redirect URL is recovered in the
// background.
func (r *CartRegistry) For(ctx context.Context, deviceID string) *cart.Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.managers[deviceID]; ok {
		return m
	}
	m := cart.NewManager(ctx, r.logger, r.gateway, r.store, deviceID)
	r.managers[deviceID] = m
	if m.CheckoutID() != "" {
		go m.RefreshCheckout(context.Background())
	}
	return m
}
