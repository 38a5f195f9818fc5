package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Create inserts the order and its items
	Create(ctx context.Context, order *Order) error
	// UpdateStatus applies a status transition with a compare-and-swap guard
	// on the previous status and version. Returns false with a nil error when
	// zero rows matched, which the caller resolves by re-reading the order.
	UpdateStatus(ctx context.Context, order *Order, previous Status) (bool, error)
}
