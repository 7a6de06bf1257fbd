package gateway

import (
	"context"

	"storefront/internal/domain"
)

// Session is the remote checkout session owned by the commerce platform. It
// accumulates line items and resolves to a redirect URL for payment.
type Session struct {
	ID          string
	RedirectURL string
	Lines       []SessionLine
}

// SessionLine is one line of a remote checkout session. LineID is the
// platform's own identifier, distinct from the variant id.
type SessionLine struct {
	LineID    string
	VariantID string
	Quantity  int
}

// FindLineByVariant returns the session line for the given variant id, or nil.
func (s *Session) FindLineByVariant(variantID string) *SessionLine {
	for i := range s.Lines {
		if s.Lines[i].VariantID == variantID {
			return &s.Lines[i]
		}
	}
	return nil
}

// Client is the storefront's view of the remote commerce platform. All calls
// may fail with network or platform errors; callers are expected to degrade
// to their local state rather than abort.
type Client interface {
	Products(ctx context.Context, limit int) ([]domain.Product, error)
	ProductByHandle(ctx context.Context, handle string) (*domain.Product, error)
	Collections(ctx context.Context) ([]domain.Collection, error)
	CollectionProducts(ctx context.Context, collectionID string) ([]domain.Product, error)

	CreateSession(ctx context.Context) (*Session, error)
	FetchSession(ctx context.Context, id string) (*Session, error)
	AddLine(ctx context.Context, sessionID, variantID string, quantity int) (*Session, error)
	UpdateLine(ctx context.Context, sessionID, lineID string, quantity int) (*Session, error)
	RemoveLine(ctx context.Context, sessionID, lineID string) (*Session, error)
}
