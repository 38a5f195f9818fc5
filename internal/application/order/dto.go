package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/order"
)

// CreateOrderItemInput is one requested line in a checkout
type CreateOrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice decimal.Decimal
	RFQID     *uuid.UUID
	QuoteID   *uuid.UUID
}

// CreateOrderRequest is the checkout request
type CreateOrderRequest struct {
	BuyerID       uuid.UUID
	PaymentStatus string
	Items         []CreateOrderItemInput
}

// TransitionStatusRequest asks for a status change on behalf of an actor
type TransitionStatusRequest struct {
	OrderID    uuid.UUID
	ActorRole  order.Role
	ActorID    uuid.UUID
	NextStatus order.Status
	Note       string
}

// ListOrdersFilter narrows and paginates order listings
type ListOrdersFilter struct {
	Page       int
	PageSize   int
	BuyerID    *uuid.UUID
	SupplierID *uuid.UUID
	Status     *order.Status
}

// OrderItemResponse represents an order line in responses
type OrderItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	RFQID      *uuid.UUID      `json:"rfq_id,omitempty"`
	QuoteID    *uuid.UUID      `json:"quote_id,omitempty"`
}

// OrderResponse is the order snapshot returned to callers
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	BuyerID            uuid.UUID           `json:"buyer_id"`
	Status             order.Status        `json:"status"`
	PaymentStatus      string              `json:"payment_status"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	DepositAmount      decimal.Decimal     `json:"deposit_amount"`
	BalanceDue         decimal.Decimal     `json:"balance_due"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	Items              []OrderItemResponse `json:"items"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Version            int                 `json:"version"`
}

// ToOrderResponse maps an order aggregate to its response form
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			SupplierID: item.SupplierID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			RFQID:      item.RFQID,
			QuoteID:    item.QuoteID,
		})
	}
	return OrderResponse{
		ID:                 o.ID,
		BuyerID:            o.BuyerID,
		Status:             o.Status,
		PaymentStatus:      o.PaymentStatus,
		TotalAmount:        o.TotalAmount,
		DepositAmount:      o.DepositAmount,
		BalanceDue:         o.BalanceDue,
		CancellationReason: o.CancellationReason,
		CancelledAt:        o.CancelledAt,
		Items:              items,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		Version:            o.Version,
	}
}

// ToOrderResponses maps a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		out = append(out, ToOrderResponse(&orders[idx]))
	}
	return out
}
