// Package inventory defines the stock reservation engine used by the order
// lifecycle manager. The guard condition on the backing store is the sole
// concurrency-control mechanism; no application-level locks are taken.
package inventory

import (
	"context"

	"github.com/google/uuid"
)

// ReservationEngine reserves and returns product stock with single-statement
// guarded updates. Both primitives must run inside the caller's transaction so
// a failure anywhere in a multi-item checkout rolls back every prior
// reservation in the same unit of work.
type ReservationEngine interface {
	// Reserve atomically decrements stock by quantity, guarded by
	// stock >= quantity. A guard miss fails with an INSUFFICIENT_STOCK
	// domain error carrying the product ID.
	Reserve(ctx context.Context, productID uuid.UUID, quantity int64) error
	// Release atomically adds previously reserved units back to stock.
	// There is no upper bound check: releases only ever return quantities
	// that an earlier Reserve took.
	Release(ctx context.Context, productID uuid.UUID, quantity int64) error
}
