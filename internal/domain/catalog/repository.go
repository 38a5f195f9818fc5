package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	// IncrementSoldCount bumps the lifetime sold counter. Runs in the caller's
	// transaction next to the stock reservation it accompanies.
	IncrementSoldCount(ctx context.Context, id uuid.UUID, quantity int64) error
}
