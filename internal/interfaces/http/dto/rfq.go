package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRFQRequest opens a negotiation. The buyer is the authenticated actor.
type CreateRFQRequest struct {
	SupplierID  string          `json:"supplier_id" binding:"required,uuid"`
	ProductID   string          `json:"product_id" binding:"required,uuid"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	TargetPrice decimal.Decimal `json:"target_price" binding:"required"`
	ExpiresAt   *time.Time      `json:"expires_at"`
}

// SubmitQuoteRequest is a supplier's priced response to an RFQ. The supplier
// is the authenticated actor.
type SubmitQuoteRequest struct {
	UnitPrice         decimal.Decimal `json:"unit_price" binding:"required"`
	AgreedQuantity    int64           `json:"agreed_quantity" binding:"required,min=1"`
	DepositPercentage decimal.Decimal `json:"deposit_percentage"`
	ValidityDays      int             `json:"validity_days" binding:"omitempty,min=1,max=365"`
	Notes             string          `json:"notes" binding:"omitempty,max=2000"`
}

// RespondToQuoteRequest is a buyer's decision on a quote
type RespondToQuoteRequest struct {
	Decision     string           `json:"decision" binding:"required,oneof=accepted rejected countered"`
	CounterPrice *decimal.Decimal `json:"counter_price"`
	CounterNote  string           `json:"counter_note" binding:"omitempty,max=2000"`
}

// ListRFQsRequest narrows RFQ listings
type ListRFQsRequest struct {
	ListRequest
	BuyerID    string `form:"buyer_id" binding:"omitempty,uuid"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	Status     string `form:"status"`
}
