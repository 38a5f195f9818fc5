package rfq

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/shared"
)

// Status represents the status of an RFQ
type Status string

const (
	StatusPending   Status = "pending"
	StatusQuoted    Status = "quoted"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
	StatusConverted Status = "converted"
)

// IsValid checks if the status is a valid RFQ Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusQuoted, StatusAccepted, StatusRejected, StatusExpired, StatusConverted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the RFQ permits no further negotiation
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusExpired || s == StatusConverted
}

// RFQ represents a request-for-quote aggregate root. It owns the quotes
// suppliers submit against it and enforces the negotiation state machine.
type RFQ struct {
	shared.BaseAggregateRoot
	BuyerID     uuid.UUID
	SupplierID  uuid.UUID
	ProductID   uuid.UUID
	Quantity    int64
	TargetPrice decimal.Decimal
	Status      Status
	ExpiresAt   *time.Time
	Quotes      []Quote `gorm:"foreignKey:RFQID"`
}

// NewRFQ creates an RFQ in pending status
func NewRFQ(buyerID, supplierID, productID uuid.UUID, quantity int64, targetPrice decimal.Decimal, expiresAt *time.Time) (*RFQ, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Buyer ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if targetPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Target price cannot be negative")
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Expiry must be in the future")
	}

	r := &RFQ{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		SupplierID:        supplierID,
		ProductID:         productID,
		Quantity:          quantity,
		TargetPrice:       targetPrice,
		Status:            StatusPending,
		ExpiresAt:         expiresAt,
		Quotes:            make([]Quote, 0),
	}
	r.AddDomainEvent(NewRFQSubmittedEvent(r))
	return r, nil
}

// IsExpired reports whether the RFQ is overdue. Expiry is a passive,
// read-time check against ExpiresAt: the system never proactively flips
// the status.
func (r *RFQ) IsExpired(now time.Time) bool {
	if r.ExpiresAt == nil {
		return false
	}
	if r.Status != StatusPending && r.Status != StatusQuoted {
		return false
	}
	return now.After(*r.ExpiresAt)
}

// EffectiveStatus resolves the read-time status, reporting expired for an
// overdue pending or quoted RFQ.
func (r *RFQ) EffectiveStatus(now time.Time) Status {
	if r.IsExpired(now) {
		return StatusExpired
	}
	return r.Status
}

// QuoteBySupplier returns the supplier's quote, if any
func (r *RFQ) QuoteBySupplier(supplierID uuid.UUID) *Quote {
	for idx := range r.Quotes {
		if r.Quotes[idx].SupplierID == supplierID {
			return &r.Quotes[idx]
		}
	}
	return nil
}

// QuoteByID returns the quote with the given ID, if owned by this RFQ
func (r *RFQ) QuoteByID(quoteID uuid.UUID) *Quote {
	for idx := range r.Quotes {
		if r.Quotes[idx].ID == quoteID {
			return &r.Quotes[idx]
		}
	}
	return nil
}

// SubmitQuote records a supplier's priced response. An existing quote from
// the same supplier is updated in place and reset to pending; the RFQ moves
// to quoted (idempotent when already quoted).
func (r *RFQ) SubmitQuote(supplierID uuid.UUID, unitPrice decimal.Decimal, agreedQuantity int64, depositPercentage decimal.Decimal, validityDays int, notes string) (*Quote, error) {
	if r.SupplierID != supplierID {
		return nil, shared.ErrUnauthorized
	}
	if r.Status.IsTerminal() || r.Status == StatusAccepted {
		return nil, shared.NewDomainError("INVALID_STATE", "RFQ is no longer open for quoting")
	}
	now := time.Now()
	if r.IsExpired(now) {
		return nil, shared.ErrQuoteExpired
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit price must be positive")
	}
	if agreedQuantity <= 0 {
		agreedQuantity = r.Quantity
	}
	if depositPercentage.IsNegative() || depositPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Deposit percentage must be between 0 and 100")
	}
	if validityDays <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Validity period must be positive")
	}

	quote := r.QuoteBySupplier(supplierID)
	if quote != nil {
		quote.resubmit(unitPrice, agreedQuantity, depositPercentage, validityDays, notes)
	} else {
		q := newQuote(r.ID, supplierID, unitPrice, agreedQuantity, depositPercentage, validityDays, notes)
		r.Quotes = append(r.Quotes, *q)
		quote = &r.Quotes[len(r.Quotes)-1]
	}

	r.Status = StatusQuoted
	r.UpdatedAt = now
	r.AddDomainEvent(NewQuoteSubmittedEvent(r, quote))
	return quote, nil
}

// Decision is the buyer's response to a quote
type Decision string

const (
	DecisionAccepted  Decision = "accepted"
	DecisionRejected  Decision = "rejected"
	DecisionCountered Decision = "countered"
)

// IsValid checks if the decision is a known one
func (d Decision) IsValid() bool {
	switch d {
	case DecisionAccepted, DecisionRejected, DecisionCountered:
		return true
	}
	return false
}

// Respond applies the buyer's decision to the given quote. Accepting moves
// quote and RFQ to accepted; rejecting ends the negotiation; countering
// stores the buyer's counter-offer and leaves the RFQ quoted for the
// supplier to resubmit.
func (r *RFQ) Respond(buyerID, quoteID uuid.UUID, decision Decision, counterPrice *decimal.Decimal, counterNote string) (*Quote, error) {
	if r.BuyerID != buyerID {
		return nil, shared.ErrUnauthorized
	}
	if r.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "RFQ is no longer open for responses")
	}
	now := time.Now()
	if r.IsExpired(now) {
		return nil, shared.ErrQuoteExpired
	}

	quote := r.QuoteByID(quoteID)
	if quote == nil {
		return nil, shared.ErrNotFound
	}

	switch decision {
	case DecisionAccepted:
		if err := quote.accept(now); err != nil {
			return nil, err
		}
		r.Status = StatusAccepted
	case DecisionRejected:
		if err := quote.reject(now); err != nil {
			return nil, err
		}
		r.Status = StatusRejected
	case DecisionCountered:
		if counterPrice == nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Counter price is required when countering")
		}
		if err := quote.counter(*counterPrice, counterNote, now); err != nil {
			return nil, err
		}
		// RFQ stays quoted; the supplier is expected to resubmit.
	default:
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown quote decision: "+string(decision))
	}

	r.UpdatedAt = now
	r.AddDomainEvent(NewQuoteRespondedEvent(r, quote, decision))
	return quote, nil
}

// MarkConverted flips an accepted RFQ to converted. Called by the order
// lifecycle manager at checkout time, never by the negotiation engine, so
// that an accepted quote that is never checked out stays accepted.
func (r *RFQ) MarkConverted() error {
	if r.Status != StatusAccepted {
		return shared.NewDomainError("INVALID_STATE", "Only an accepted RFQ can be converted")
	}
	r.Status = StatusConverted
	r.UpdatedAt = time.Now()
	return nil
}

// AcceptedQuote returns the accepted quote, if any
func (r *RFQ) AcceptedQuote() *Quote {
	for idx := range r.Quotes {
		if r.Quotes[idx].Status == QuoteStatusAccepted {
			return &r.Quotes[idx]
		}
	}
	return nil
}

// TableName returns the table name for GORM
func (RFQ) TableName() string {
	return "rfqs"
}
