package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/shared"
)

// OrderItem represents a line item in an order. Created atomically with its
// order and immutable thereafter; restock bookkeeping reads quantities but
// never alters them.
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ProductID  uuid.UUID
	SupplierID uuid.UUID // denormalized at creation time
	Quantity   int64
	Price      decimal.Decimal // line total, not unit price
	RFQID      *uuid.UUID
	QuoteID    *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrderItem creates a line item. The line total is recomputed from the
// submitted unit price; a client-supplied aggregate is never trusted.
func NewOrderItem(orderID, productID, supplierID uuid.UUID, quantity int64, unitPrice decimal.Decimal, rfqID, quoteID *uuid.UUID) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}
	if (rfqID == nil) != (quoteID == nil) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "RFQ and quote references must be provided together")
	}

	now := time.Now()
	return &OrderItem{
		ID:         uuid.New(),
		OrderID:    orderID,
		ProductID:  productID,
		SupplierID: supplierID,
		Quantity:   quantity,
		Price:      unitPrice.Mul(decimal.NewFromInt(quantity)),
		RFQID:      rfqID,
		QuoteID:    quoteID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order represents an order aggregate root. Created once at checkout, mutated
// only through status-transition operations, never physically deleted.
type Order struct {
	shared.BaseAggregateRoot
	BuyerID            uuid.UUID
	Items              []OrderItem `gorm:"foreignKey:OrderID"`
	Status             Status
	PaymentStatus      string // opaque input from the payment collaborator
	TotalAmount        decimal.Decimal
	DepositAmount      decimal.Decimal
	BalanceDue         decimal.Decimal
	CancellationReason string
	CancelledAt        *time.Time
}

// NewOrder creates an order in pending status with no items yet
func NewOrder(buyerID uuid.UUID, paymentStatus string) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Buyer ID cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		Items:             make([]OrderItem, 0),
		Status:            StatusPending,
		PaymentStatus:     paymentStatus,
		TotalAmount:       decimal.Zero,
		DepositAmount:     decimal.Zero,
		BalanceDue:        decimal.Zero,
	}, nil
}

// AddItem appends a line item and recomputes the order totals
func (o *Order) AddItem(productID, supplierID uuid.UUID, quantity int64, unitPrice decimal.Decimal, rfqID, quoteID *uuid.UUID) (*OrderItem, error) {
	item, err := NewOrderItem(o.ID, productID, supplierID, quantity, unitPrice, rfqID, quoteID)
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	return item, nil
}

// SetDeposit records the deposit owed up front and derives the balance due,
// clamped so it never goes negative.
func (o *Order) SetDeposit(deposit decimal.Decimal) {
	if deposit.IsNegative() {
		deposit = decimal.Zero
	}
	if deposit.GreaterThan(o.TotalAmount) {
		deposit = o.TotalAmount
	}
	o.DepositAmount = deposit
	o.BalanceDue = o.TotalAmount.Sub(deposit)
	o.UpdatedAt = time.Now()
}

// Place moves a freshly created order into placed status once every stock
// reservation in the checkout has succeeded.
func (o *Order) Place() error {
	if o.Status != StatusPending {
		return shared.NewInvalidTransitionError(o.Status.String(), StatusPlaced.String())
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot place an order without items")
	}

	o.Status = StatusPlaced
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// ApplyTransition moves the order into next on behalf of the given role.
// The caller has already verified actor authorization; this method enforces
// the role's transition table and records terminal-state bookkeeping.
func (o *Order) ApplyTransition(role Role, next Status, note string) error {
	if !CanTransition(role, o.Status, next) {
		return shared.NewInvalidTransitionError(o.Status.String(), next.String())
	}

	from := o.Status
	now := time.Now()
	o.Status = next
	o.UpdatedAt = now

	if next == StatusCancelled {
		o.CancellationReason = note
		o.CancelledAt = &now
	}

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, next, role, note))
	return nil
}

// SupplierIDs returns the distinct suppliers across all items
func (o *Order) SupplierIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Items))
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.SupplierID]; !ok {
			seen[item.SupplierID] = struct{}{}
			ids = append(ids, item.SupplierID)
		}
	}
	return ids
}

// IsSoleSupplier reports whether every item belongs to the given supplier.
// Orders spanning multiple suppliers are admin-managed: seller-side status
// management is disabled for them entirely.
func (o *Order) IsSoleSupplier(supplierID uuid.UUID) bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, item := range o.Items {
		if item.SupplierID != supplierID {
			return false
		}
	}
	return true
}

// QuantityByProduct aggregates item quantities per distinct product
func (o *Order) QuantityByProduct() map[uuid.UUID]int64 {
	quantities := make(map[uuid.UUID]int64, len(o.Items))
	for _, item := range o.Items {
		quantities[item.ProductID] += item.Quantity
	}
	return quantities
}

// RFQReferences returns the distinct RFQ IDs linked by items
func (o *Order) RFQReferences() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, item := range o.Items {
		if item.RFQID == nil {
			continue
		}
		if _, ok := seen[*item.RFQID]; !ok {
			seen[*item.RFQID] = struct{}{}
			ids = append(ids, *item.RFQID)
		}
	}
	return ids
}

// IsTerminal reports whether the order is in a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// recalculateTotal recomputes the authoritative order total from line totals
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price)
	}
	o.TotalAmount = total
	o.BalanceDue = o.TotalAmount.Sub(o.DepositAmount)
	if o.BalanceDue.IsNegative() {
		o.BalanceDue = decimal.Zero
	}
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}
