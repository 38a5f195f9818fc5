package rfq

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/rfq"
)

// CreateRFQRequest opens a negotiation for a product/quantity
type CreateRFQRequest struct {
	BuyerID     uuid.UUID
	SupplierID  uuid.UUID
	ProductID   uuid.UUID
	Quantity    int64
	TargetPrice decimal.Decimal
	ExpiresAt   *time.Time
}

// SubmitQuoteRequest is a supplier's priced response to an RFQ
type SubmitQuoteRequest struct {
	RFQID             uuid.UUID
	SupplierID        uuid.UUID
	UnitPrice         decimal.Decimal
	AgreedQuantity    int64
	DepositPercentage decimal.Decimal
	ValidityDays      int
	Notes             string
}

// RespondToQuoteRequest is a buyer's decision on a quote
type RespondToQuoteRequest struct {
	QuoteID      uuid.UUID
	BuyerID      uuid.UUID
	Decision     rfq.Decision
	CounterPrice *decimal.Decimal
	CounterNote  string
}

// ListRFQsFilter narrows and paginates RFQ listings
type ListRFQsFilter struct {
	Page       int
	PageSize   int
	BuyerID    *uuid.UUID
	SupplierID *uuid.UUID
	Status     *rfq.Status
}

// QuoteResponse represents a quote in responses
type QuoteResponse struct {
	ID                uuid.UUID        `json:"id"`
	RFQID             uuid.UUID        `json:"rfq_id"`
	SupplierID        uuid.UUID        `json:"supplier_id"`
	UnitPrice         decimal.Decimal  `json:"unit_price"`
	AgreedQuantity    int64            `json:"agreed_quantity"`
	DepositPercentage decimal.Decimal  `json:"deposit_percentage"`
	ValidityDays      int              `json:"validity_days"`
	ValidUntil        time.Time        `json:"valid_until"`
	Status            rfq.QuoteStatus  `json:"status"`
	CounterPrice      *decimal.Decimal `json:"counter_price,omitempty"`
	CounterNote       string           `json:"counter_note,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	SubmittedAt       time.Time        `json:"submitted_at"`
}

// RFQResponse is the RFQ snapshot returned to callers. Status is the
// effective, read-time status: an overdue RFQ reads as expired.
type RFQResponse struct {
	ID          uuid.UUID       `json:"id"`
	BuyerID     uuid.UUID       `json:"buyer_id"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	TargetPrice decimal.Decimal `json:"target_price"`
	Status      rfq.Status      `json:"status"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	Quotes      []QuoteResponse `json:"quotes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToQuoteResponse maps a quote to its response form
func ToQuoteResponse(q *rfq.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                q.ID,
		RFQID:             q.RFQID,
		SupplierID:        q.SupplierID,
		UnitPrice:         q.UnitPrice,
		AgreedQuantity:    q.AgreedQuantity,
		DepositPercentage: q.DepositPercentage,
		ValidityDays:      q.ValidityDays,
		ValidUntil:        q.ValidUntil(),
		Status:            q.Status,
		CounterPrice:      q.CounterPrice,
		CounterNote:       q.CounterNote,
		Notes:             q.Notes,
		SubmittedAt:       q.SubmittedAt,
	}
}

// ToRFQResponse maps an RFQ aggregate to its response form
func ToRFQResponse(r *rfq.RFQ) RFQResponse {
	quotes := make([]QuoteResponse, 0, len(r.Quotes))
	for idx := range r.Quotes {
		quotes = append(quotes, ToQuoteResponse(&r.Quotes[idx]))
	}
	return RFQResponse{
		ID:          r.ID,
		BuyerID:     r.BuyerID,
		SupplierID:  r.SupplierID,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		TargetPrice: r.TargetPrice,
		Status:      r.EffectiveStatus(time.Now()),
		ExpiresAt:   r.ExpiresAt,
		Quotes:      quotes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Version:     r.Version,
	}
}

// ToRFQResponses maps a slice of RFQs
func ToRFQResponses(rfqs []rfq.RFQ) []RFQResponse {
	out := make([]RFQResponse, 0, len(rfqs))
	for idx := range rfqs {
		out = append(out, ToRFQResponse(&rfqs[idx]))
	}
	return out
}
