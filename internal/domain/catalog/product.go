package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/shared"
)

// Product represents a supplier's catalog entry. The marketplace core only
// mutates Stock and SoldCount, and only inside the same transaction as the
// order writes they accompany.
type Product struct {
	shared.BaseAggregateRoot
	Name       string
	SKU        string
	SupplierID uuid.UUID
	UnitPrice  decimal.Decimal
	Stock      int64 // never negative; every decrement is guarded
	SoldCount  int64 // lifetime counter, monotonic non-decreasing
}

// NewProduct creates a new catalog product
func NewProduct(name, sku string, supplierID uuid.UUID, unitPrice decimal.Decimal, stock int64) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product SKU cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier ID cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Stock cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		SupplierID:        supplierID,
		UnitPrice:         unitPrice,
		Stock:             stock,
		SoldCount:         0,
	}, nil
}

// Restock adds quantity back to the available stock. SoldCount is left
// untouched: it is a lifetime counter, not a live-inventory counter.
func (p *Product) Restock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Restock quantity must be positive")
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// UpdatePricing changes the listed unit price
func (p *Product) UpdatePricing(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}
	p.UnitPrice = unitPrice
	p.UpdatedAt = time.Now()
	return nil
}

// BelongsTo reports whether the product is supplied by the given supplier
func (p *Product) BelongsTo(supplierID uuid.UUID) bool {
	return p.SupplierID == supplierID
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}
