package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/shared"
)

// Event types for order lifecycle events
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// AggregateTypeOrder identifies the order aggregate in events
const AggregateTypeOrder = "Order"

// PlacedEvent is emitted when checkout completes and the order is placed
type PlacedEvent struct {
	shared.BaseDomainEvent
	BuyerID     uuid.UUID       `json:"buyer_id"`
	SupplierIDs []uuid.UUID     `json:"supplier_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewOrderPlacedEvent creates a PlacedEvent from the order
func NewOrderPlacedEvent(o *Order) *PlacedEvent {
	return &PlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		BuyerID:         o.BuyerID,
		SupplierIDs:     o.SupplierIDs(),
		TotalAmount:     o.TotalAmount,
		ItemCount:       len(o.Items),
	}
}

// StatusChangedEvent is emitted once per effective status transition
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	BuyerID     uuid.UUID   `json:"buyer_id"`
	SupplierIDs []uuid.UUID `json:"supplier_ids"`
	FromStatus  Status      `json:"from_status"`
	ToStatus    Status      `json:"to_status"`
	ActorRole   Role        `json:"actor_role"`
	Note        string      `json:"note,omitempty"`
}

// NewOrderStatusChangedEvent creates a StatusChangedEvent for a transition
func NewOrderStatusChangedEvent(o *Order, from, to Status, role Role, note string) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		BuyerID:         o.BuyerID,
		SupplierIDs:     o.SupplierIDs(),
		FromStatus:      from,
		ToStatus:        to,
		ActorRole:       role,
		Note:            note,
	}
}
