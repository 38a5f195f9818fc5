package rfq

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/domain/shared"
)

// Repository defines persistence operations for RFQs and their quotes
type Repository interface {
	// FindByID loads an RFQ with its quotes
	FindByID(ctx context.Context, id uuid.UUID) (*RFQ, error)
	// FindByQuoteID loads the RFQ owning the given quote
	FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*RFQ, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]RFQ, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save creates the RFQ and its quotes
	Save(ctx context.Context, r *RFQ) error
	// SaveWithLock persists the RFQ and its quotes with an optimistic version
	// check so concurrent negotiation steps cannot silently overwrite each
	// other.
	SaveWithLock(ctx context.Context, r *RFQ) error
}
