package order

import (
	"context"

	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/inventory"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/rfq"
)

// TransactionalRepositories provides access to all repositories scoped to a
// single transaction. Everything obtained through it reads and writes the
// same unit of work.
type TransactionalRepositories interface {
	// Orders returns the order repository scoped to the transaction
	Orders() order.Repository
	// Products returns the product repository scoped to the transaction
	Products() catalog.ProductRepository
	// Stock returns the reservation engine scoped to the transaction
	Stock() inventory.ReservationEngine
	// RFQs returns the RFQ repository scoped to the transaction
	RFQs() rfq.Repository
}

// TransactionScope executes a function within one atomic unit of work. If the
// function returns an error every mutation performed earlier in the same call
// is rolled back: there is no partial order, partial reservation, or partial
// quote update.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
