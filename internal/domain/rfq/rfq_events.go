package rfq

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/shared"
)

// Event types for RFQ negotiation events
const (
	EventTypeRFQSubmitted   = "rfq.submitted"
	EventTypeQuoteSubmitted = "rfq.quoted"
	EventTypeQuoteResponded = "rfq.responded"
)

// AggregateTypeRFQ identifies the RFQ aggregate in events
const AggregateTypeRFQ = "RFQ"

// SubmittedEvent is emitted when a buyer opens a negotiation
type SubmittedEvent struct {
	shared.BaseDomainEvent
	BuyerID     uuid.UUID       `json:"buyer_id"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	TargetPrice decimal.Decimal `json:"target_price"`
}

// NewRFQSubmittedEvent creates a SubmittedEvent from the RFQ
func NewRFQSubmittedEvent(r *RFQ) *SubmittedEvent {
	return &SubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRFQSubmitted, AggregateTypeRFQ, r.ID),
		BuyerID:         r.BuyerID,
		SupplierID:      r.SupplierID,
		ProductID:       r.ProductID,
		Quantity:        r.Quantity,
		TargetPrice:     r.TargetPrice,
	}
}

// QuoteSubmittedEvent is emitted when a supplier quotes (or requotes) an RFQ
type QuoteSubmittedEvent struct {
	shared.BaseDomainEvent
	QuoteID    uuid.UUID       `json:"quote_id"`
	BuyerID    uuid.UUID       `json:"buyer_id"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// NewQuoteSubmittedEvent creates a QuoteSubmittedEvent for the quote
func NewQuoteSubmittedEvent(r *RFQ, q *Quote) *QuoteSubmittedEvent {
	return &QuoteSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteSubmitted, AggregateTypeRFQ, r.ID),
		QuoteID:         q.ID,
		BuyerID:         r.BuyerID,
		SupplierID:      q.SupplierID,
		UnitPrice:       q.UnitPrice,
	}
}

// QuoteRespondedEvent is emitted when a buyer accepts, rejects, or counters
type QuoteRespondedEvent struct {
	shared.BaseDomainEvent
	QuoteID      uuid.UUID        `json:"quote_id"`
	BuyerID      uuid.UUID        `json:"buyer_id"`
	SupplierID   uuid.UUID        `json:"supplier_id"`
	Decision     Decision         `json:"decision"`
	CounterPrice *decimal.Decimal `json:"counter_price,omitempty"`
}

// NewQuoteRespondedEvent creates a QuoteRespondedEvent for the decision
func NewQuoteRespondedEvent(r *RFQ, q *Quote, decision Decision) *QuoteRespondedEvent {
	return &QuoteRespondedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteResponded, AggregateTypeRFQ, r.ID),
		QuoteID:         q.ID,
		BuyerID:         r.BuyerID,
		SupplierID:      q.SupplierID,
		Decision:        decision,
		CounterPrice:    q.CounterPrice,
	}
}
