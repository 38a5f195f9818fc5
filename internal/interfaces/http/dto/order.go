package dto

import "github.com/shopspring/decimal"

// CreateOrderItemRequest is one requested line in a checkout
type CreateOrderItemRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Quantity  int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	RFQID     *string         `json:"rfq_id" binding:"omitempty,uuid"`
	QuoteID   *string         `json:"quote_id" binding:"omitempty,uuid"`
}

// CreateOrderRequest is the checkout payload. The buyer is the
// authenticated actor, not part of the body.
type CreateOrderRequest struct {
	PaymentStatus string                   `json:"payment_status" binding:"omitempty,oneof=unpaid deposit_paid paid"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransitionOrderStatusRequest asks for a status change on an order
type TransitionOrderStatusRequest struct {
	NextStatus string `json:"next_status" binding:"required"`
	Note       string `json:"note" binding:"omitempty,max=500"`
}

// ListOrdersRequest narrows order listings
type ListOrdersRequest struct {
	ListRequest
	BuyerID    string `form:"buyer_id" binding:"omitempty,uuid"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	Status     string `form:"status"`
}
