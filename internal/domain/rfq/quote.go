package rfq

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/shared"
)

// QuoteStatus represents the status of a supplier's quote
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCountered QuoteStatus = "countered"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusCountered:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// Quote is a supplier's priced response to an RFQ. There is at most one quote
// per (RFQ, supplier) pair: a resubmission updates the row in place rather
// than creating a duplicate.
type Quote struct {
	ID                uuid.UUID
	RFQID             uuid.UUID
	SupplierID        uuid.UUID
	UnitPrice         decimal.Decimal
	AgreedQuantity    int64
	DepositPercentage decimal.Decimal
	ValidityDays      int
	Status            QuoteStatus
	CounterPrice      *decimal.Decimal
	CounterNote       string
	Notes             string
	SubmittedAt       time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func newQuote(rfqID, supplierID uuid.UUID, unitPrice decimal.Decimal, agreedQuantity int64, depositPercentage decimal.Decimal, validityDays int, notes string) *Quote {
	now := time.Now()
	return &Quote{
		ID:                uuid.New(),
		RFQID:             rfqID,
		SupplierID:        supplierID,
		UnitPrice:         unitPrice,
		AgreedQuantity:    agreedQuantity,
		DepositPercentage: depositPercentage,
		ValidityDays:      validityDays,
		Status:            QuoteStatusPending,
		Notes:             notes,
		SubmittedAt:       now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// resubmit replaces the quote's terms and resets it to pending. Used when a
// supplier revises a countered (or still pending) quote.
func (q *Quote) resubmit(unitPrice decimal.Decimal, agreedQuantity int64, depositPercentage decimal.Decimal, validityDays int, notes string) {
	now := time.Now()
	q.UnitPrice = unitPrice
	q.AgreedQuantity = agreedQuantity
	q.DepositPercentage = depositPercentage
	q.ValidityDays = validityDays
	q.Status = QuoteStatusPending
	q.CounterPrice = nil
	q.CounterNote = ""
	q.Notes = notes
	q.SubmittedAt = now
	q.UpdatedAt = now
}

// ValidUntil returns the end of the quote's validity window
func (q *Quote) ValidUntil() time.Time {
	return q.SubmittedAt.AddDate(0, 0, q.ValidityDays)
}

// IsExpired reports whether the validity window has elapsed
func (q *Quote) IsExpired(now time.Time) bool {
	return q.ValidityDays > 0 && now.After(q.ValidUntil())
}

func (q *Quote) accept(now time.Time) error {
	if q.Status != QuoteStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only a pending quote can be accepted")
	}
	if q.IsExpired(now) {
		return shared.ErrQuoteExpired
	}
	q.Status = QuoteStatusAccepted
	q.UpdatedAt = now
	return nil
}

func (q *Quote) reject(now time.Time) error {
	if q.Status != QuoteStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only a pending quote can be rejected")
	}
	q.Status = QuoteStatusRejected
	q.UpdatedAt = now
	return nil
}

func (q *Quote) counter(price decimal.Decimal, note string, now time.Time) error {
	if q.Status != QuoteStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only a pending quote can be countered")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Counter price must be positive")
	}
	q.Status = QuoteStatusCountered
	q.CounterPrice = &price
	q.CounterNote = note
	q.UpdatedAt = now
	return nil
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}
