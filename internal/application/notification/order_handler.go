package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultDedupTTL bounds how long a delivered notification suppresses
// duplicates of the same event for the same recipient.
const DefaultDedupTTL = 24 * time.Hour

// OrderHandler turns order lifecycle events into notifications for the buyer
// and every supplier on the order. Each event is dispatched at most once per
// recipient; a delivery failure is logged and the event is still considered
// handled, so the bus never retries into a double-send.
type OrderHandler struct {
	notifier Notifier
	dedup    shared.IdempotencyStore
	dedupTTL time.Duration
	logger   *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(notifier Notifier, dedup shared.IdempotencyStore, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		notifier: notifier,
		dedup:    dedup,
		dedupTTL: DefaultDedupTTL,
		logger:   logger,
	}
}

// SetDedupTTL overrides the duplicate-suppression window
func (h *OrderHandler) SetDedupTTL(ttl time.Duration) {
	if ttl > 0 {
		h.dedupTTL = ttl
	}
}

// EventTypes returns the order events this handler consumes
func (h *OrderHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged}
}

// Handle fans the event out to its recipients
func (h *OrderHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.PlacedEvent:
		orderID := e.AggregateID()
		h.dispatch(ctx, event, Notification{
			RecipientID: e.BuyerID,
			Kind:        "order.placed",
			OrderID:     &orderID,
			Payload: map[string]interface{}{
				"total_amount": e.TotalAmount,
				"item_count":   e.ItemCount,
			},
		})
		for _, supplierID := range e.SupplierIDs {
			h.dispatch(ctx, event, Notification{
				RecipientID: supplierID,
				Kind:        "order.received",
				OrderID:     &orderID,
				Payload: map[string]interface{}{
					"buyer_id":   e.BuyerID,
					"item_count": e.ItemCount,
				},
			})
		}
	case *order.StatusChangedEvent:
		orderID := e.AggregateID()
		payload := map[string]interface{}{
			"from_status": e.FromStatus.String(),
			"to_status":   e.ToStatus.String(),
		}
		if e.Note != "" {
			payload["note"] = e.Note
		}
		h.dispatch(ctx, event, Notification{
			RecipientID: e.BuyerID,
			Kind:        "order." + e.ToStatus.String(),
			OrderID:     &orderID,
			Payload:     payload,
		})
		for _, supplierID := range e.SupplierIDs {
			h.dispatch(ctx, event, Notification{
				RecipientID: supplierID,
				Kind:        "order." + e.ToStatus.String(),
				OrderID:     &orderID,
				Payload:     payload,
			})
		}
	default:
		h.logger.Warn("unexpected event type in order notification handler",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

func (h *OrderHandler) dispatch(ctx context.Context, event shared.DomainEvent, n Notification) {
	key := dedupKey(event.EventID(), n.RecipientID)
	fresh, err := h.dedup.MarkProcessed(ctx, key, h.dedupTTL)
	if err != nil {
		h.logger.Error("notification dedup check failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if !fresh {
		return
	}
	if err := h.notifier.Send(ctx, n); err != nil {
		h.logger.Error("failed to send order notification",
			zap.String("kind", n.Kind),
			zap.String("recipient_id", n.RecipientID.String()),
			zap.Error(err),
		)
	}
}

func dedupKey(eventID, recipientID uuid.UUID) string {
	return "notify:" + eventID.String() + ":" + recipientID.String()
}
