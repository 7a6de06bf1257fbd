package session

import (
	"context"

	"storefront/internal/domain"
)

// Persisted entry names, one row each per device.
const (
	entryCart       = "cart"
	entryCheckoutID = "checkoutId"
)

// State is the persisted cart state of one device: the serialized line items
// and the remote checkout session id, when one has been created.
type State struct {
	Lines      []domain.LineItem
	CheckoutID string
}

// Store persists cart state across application restarts. A missing or
// malformed entry is reported as absent, never as an error; storage write
// failures are returned for logging but callers do not treat them as fatal.
type Store interface {
	Load(ctx context.Context, deviceID string) (State, error)
	SaveCart(ctx context.Context, deviceID string, lines []domain.LineItem) error
	SaveCheckoutID(ctx context.Context, deviceID, checkoutID string) error
	Clear(ctx context.Context, deviceID string) error
}
