package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"storefront/internal/domain"
	"storefront/internal/gateway"
	"storefront/internal/session"
)

// Manager owns the local cart of one device and mirrors it, best effort,
// into a checkout session on the remote commerce platform. Local mutations
// are applied optimistically and persisted write-through; a failed platform
// call is logged and leaves the manager in StateDiverged rather than rolling
// back. Mutations are serialized: at most one operation runs at a time.
type Manager struct {
	logger   *log.Logger
	gateway  gateway.Client
	store    session.Store
	deviceID string

	mu          sync.Mutex
	cart        domain.Cart
	checkoutID  string
	checkoutURL string
	state       domain.SyncState
	busy        atomic.Bool
}

// NewManager restores persisted state for the device and returns a manager.
// A storage failure or malformed payload is treated as no prior state. When
// a checkout id was restored the redirect URL is unknown until
// RefreshCheckout succeeds, so the manager starts out diverged.
func NewManager(ctx context.Context, logger *log.Logger, gw gateway.Client, store session.Store, deviceID string) *Manager {
	m := &Manager{
		logger:   logger,
		gateway:  gw,
		store:    store,
		deviceID: deviceID,
		state:    domain.StateEmptyLocal,
	}

	state, err := store.Load(ctx, deviceID)
	if err != nil {
		logger.Printf("cart: load persisted state for device %s: %v", deviceID, err)
		return m
	}
	m.cart.Lines = state.Lines
	m.checkoutID = state.CheckoutID
	if m.checkoutID != "" {
		m.state = domain.StateDiverged
	} else if !m.cart.IsEmpty() {
		m.state = domain.StateLocalOnly
	}
	return m
}

// RefreshCheckout fetches the remote session to recover its redirect URL.
// Intended to run asynchronously after construction; a failure keeps the
// checkout id and leaves the manager diverged.
func (m *Manager) RefreshCheckout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.checkoutID == "" {
		return
	}
	sess, err := m.gateway.FetchSession(ctx, m.checkoutID)
	if err != nil {
		m.logger.Printf("cart: fetch checkout %s: %v", m.checkoutID, err)
		m.state = domain.StateDiverged
		return
	}
	m.checkoutURL = sess.RedirectURL
	m.state = domain.StateSynced
}

// AddToCart merges the variant into the cart (one line per variant id,
// quantities accumulate), persists, and submits the added quantity to the
// remote session, creating one lazily on the first add. The local cart
// reflects the addition regardless of the remote outcome.
func (m *Manager) AddToCart(ctx context.Context, product domain.Product, variant domain.Variant, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy.Store(true)
	defer m.busy.Store(false)

	if !m.cart.IsEmpty() && m.cart.Currency() != variant.Price.Currency {
		return domain.ErrCurrencyMismatch
	}

	if i := m.cart.FindLine(variant.ID); i >= 0 {
		m.cart.Lines[i].Quantity += quantity
	} else {
		m.cart.Lines = append(m.cart.Lines, domain.LineItem{
			VariantID: variant.ID,
			Quantity:  quantity,
			Product:   product,
			Variant:   variant,
		})
	}
	m.persistCart(ctx)
	m.recomputeLocalState()

	if m.checkoutID == "" {
		sess, err := m.gateway.CreateSession(ctx)
		if err != nil {
			m.logger.Printf("cart: create checkout session: %v", err)
			m.state = domain.StateDiverged
			return nil
		}
		m.checkoutID = sess.ID
		m.checkoutURL = sess.RedirectURL
		if err := m.store.SaveCheckoutID(ctx, m.deviceID, m.checkoutID); err != nil {
			m.logger.Printf("cart: persist checkout id: %v", err)
		}
	}

	sess, err := m.gateway.AddLine(ctx, m.checkoutID, variant.ID, quantity)
	if err != nil {
		m.logger.Printf("cart: add line to checkout %s: %v", m.checkoutID, err)
		m.state = domain.StateDiverged
		return nil
	}
	m.checkoutURL = sess.RedirectURL
	m.state = domain.StateSynced
	return nil
}

// RemoveFromCart removes the line for the variant (no-op if absent),
// persists, and removes the matching remote line when one exists. A remote
// line that cannot be matched makes the removal local-only.
func (m *Manager) RemoveFromCart(ctx context.Context, variantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy.Store(true)
	defer m.busy.Store(false)

	if i := m.cart.FindLine(variantID); i >= 0 {
		m.cart.Lines = append(m.cart.Lines[:i], m.cart.Lines[i+1:]...)
		m.persistCart(ctx)
	}
	m.recomputeLocalState()

	if m.checkoutID == "" {
		return nil
	}
	m.mirrorLine(ctx, variantID, 0)
	return nil
}

// UpdateQuantity replaces the line's quantity and pushes it to the matching
// remote line. A quantity of zero or less behaves exactly like
// RemoveFromCart.
func (m *Manager) UpdateQuantity(ctx context.Context, variantID string, quantity int) error {
	if quantity <= 0 {
		return m.RemoveFromCart(ctx, variantID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy.Store(true)
	defer m.busy.Store(false)

	if i := m.cart.FindLine(variantID); i >= 0 {
		m.cart.Lines[i].Quantity = quantity
		m.persistCart(ctx)
	}

	if m.checkoutID == "" {
		return nil
	}
	m.mirrorLine(ctx, variantID, quantity)
	return nil
}

// ClearCart empties the cart, forgets the remote session, and erases the
// persisted entries. The remote session itself is not cancelled, only
// forgotten.
func (m *Manager) ClearCart(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy.Store(true)
	defer m.busy.Store(false)

	m.cart = domain.Cart{}
	m.checkoutID = ""
	m.checkoutURL = ""
	m.state = domain.StateEmptyLocal
	if err := m.store.Clear(ctx, m.deviceID); err != nil {
		m.logger.Printf("cart: clear persisted state: %v", err)
	}
	return nil
}

// Items returns a copy of the cart's lines in display order.
func (m *Manager) Items() []domain.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.LineItem, len(m.cart.Lines))
	copy(out, m.cart.Lines)
	return out
}

// Count is the sum of all line quantities. Never blocks on the network.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Count()
}

// Total is the sum of unit price times quantity across all lines.
func (m *Manager) Total() (domain.Money, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Total()
}

// CheckoutURL is the redirect target of the remote session, or "" when no
// session exists or its URL has not been recovered yet.
func (m *Manager) CheckoutURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkoutURL
}

func (m *Manager) CheckoutID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkoutID
}

// State reports how the local cart relates to the remote session.
func (m *Manager) State() domain.SyncState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Busy reports whether a mutation is currently in flight. Advisory only;
// mutations are serialized internally regardless.
func (m *Manager) Busy() bool {
	return m.busy.Load()
}

func (m *Manager) DeviceID() string {
	return m.deviceID
}

// mirrorLine pushes the state of one variant to the remote session: fetch
// the session, match the line by variant id, then update or remove it.
// A quantity of zero removes. Callers hold the mutex.
func (m *Manager) mirrorLine(ctx context.Context, variantID string, quantity int) {
	sess, err := m.gateway.FetchSession(ctx, m.checkoutID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The platform no longer knows the session; the change
			// stays local-only.
			return
		}
		m.logger.Printf("cart: fetch checkout %s: %v", m.checkoutID, err)
		m.state = domain.StateDiverged
		return
	}

	line := sess.FindLineByVariant(variantID)
	if line == nil {
		// No matching remote line; the fetch itself succeeded.
		m.checkoutURL = sess.RedirectURL
		m.state = domain.StateSynced
		return
	}

	if quantity <= 0 {
		sess, err = m.gateway.RemoveLine(ctx, m.checkoutID, line.LineID)
	} else {
		sess, err = m.gateway.UpdateLine(ctx, m.checkoutID, line.LineID, quantity)
	}
	if err != nil {
		m.logger.Printf("cart: mirror line %s on checkout %s: %v", variantID, m.checkoutID, err)
		m.state = domain.StateDiverged
		return
	}
	m.checkoutURL = sess.RedirectURL
	m.state = domain.StateSynced
}

func (m *Manager) persistCart(ctx context.Context) {
	if err := m.store.SaveCart(ctx, m.deviceID, m.cart.Lines); err != nil {
		m.logger.Printf("cart: persist cart for device %s: %v", m.deviceID, err)
	}
}

// recomputeLocalState resolves the state for carts without a remote session.
// With a session, state is owned by the outcome of remote calls.
func (m *Manager) recomputeLocalState() {
	if m.checkoutID != "" {
		return
	}
	if m.cart.IsEmpty() {
		m.state = domain.StateEmptyLocal
	} else {
		m.state = domain.StateLocalOnly
	}
}
