package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/inventory"
	"github.com/tradelink/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReservationEngine implements the stock reservation engine with guarded
// single-statement updates. The stock >= quantity guard in the WHERE clause is
// the only concurrency control: when two checkouts race for the last units,
// the database serializes the updates and exactly one guard misses.
type GormReservationEngine struct {
	db *gorm.DB
}

// NewGormReservationEngine creates a new GormReservationEngine
func NewGormReservationEngine(db *gorm.DB) *GormReservationEngine {
	return &GormReservationEngine{db: db}
}

// Reserve decrements stock by quantity, guarded so stock never goes negative.
// Zero rows affected means the guard missed; the caller's transaction rolls
// back any reservations made earlier in the same checkout.
func (e *GormReservationEngine) Reserve(ctx context.Context, productID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Reservation quantity must be positive")
	}

	result := e.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing product from an insufficient-stock guard miss.
		var exists int64
		if err := e.db.WithContext(ctx).
			Model(&catalog.Product{}).
			Where("id = ?", productID).
			Count(&exists).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if exists == 0 {
			return shared.ErrNotFound
		}
		return shared.NewInsufficientStockError(productID.String(), quantity)
	}
	return nil
}

// Release adds previously reserved units back to stock. Releases only ever
// return quantities an earlier Reserve took, so there is no upper bound check.
func (e *GormReservationEngine) Release(ctx context.Context, productID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Release quantity must be positive")
	}

	result := e.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormReservationEngine implements ReservationEngine
var _ inventory.ReservationEngine = (*GormReservationEngine)(nil)
