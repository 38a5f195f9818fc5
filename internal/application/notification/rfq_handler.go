package notification

import (
	"context"
	"time"

	"github.com/tradelink/backend/internal/domain/rfq"
	"github.com/tradelink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RFQHandler turns negotiation events into notifications: a new RFQ alerts
// the supplier, a quote alerts the buyer, and a buyer decision alerts the
// supplier. Same dedup and failure policy as the order handler.
type RFQHandler struct {
	notifier Notifier
	dedup    shared.IdempotencyStore
	dedupTTL time.Duration
	logger   *zap.Logger
}

// NewRFQHandler creates a new RFQHandler
func NewRFQHandler(notifier Notifier, dedup shared.IdempotencyStore, logger *zap.Logger) *RFQHandler {
	return &RFQHandler{
		notifier: notifier,
		dedup:    dedup,
		dedupTTL: DefaultDedupTTL,
		logger:   logger,
	}
}

// SetDedupTTL overrides the duplicate-suppression window
func (h *RFQHandler) SetDedupTTL(ttl time.Duration) {
	if ttl > 0 {
		h.dedupTTL = ttl
	}
}

// EventTypes returns the RFQ events this handler consumes
func (h *RFQHandler) EventTypes() []string {
	return []string{rfq.EventTypeRFQSubmitted, rfq.EventTypeQuoteSubmitted, rfq.EventTypeQuoteResponded}
}

// Handle routes each negotiation event to its counterparty
func (h *RFQHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *rfq.SubmittedEvent:
		rfqID := e.AggregateID()
		h.dispatch(ctx, event, Notification{
			RecipientID: e.SupplierID,
			Kind:        "rfq.received",
			RFQID:       &rfqID,
			Payload: map[string]interface{}{
				"buyer_id":     e.BuyerID,
				"product_id":   e.ProductID,
				"quantity":     e.Quantity,
				"target_price": e.TargetPrice,
			},
		})
	case *rfq.QuoteSubmittedEvent:
		rfqID := e.AggregateID()
		h.dispatch(ctx, event, Notification{
			RecipientID: e.BuyerID,
			Kind:        "rfq.quoted",
			RFQID:       &rfqID,
			Payload: map[string]interface{}{
				"quote_id":   e.QuoteID,
				"unit_price": e.UnitPrice,
			},
		})
	case *rfq.QuoteRespondedEvent:
		rfqID := e.AggregateID()
		payload := map[string]interface{}{
			"quote_id": e.QuoteID,
			"decision": string(e.Decision),
		}
		if e.CounterPrice != nil {
			payload["counter_price"] = *e.CounterPrice
		}
		h.dispatch(ctx, event, Notification{
			RecipientID: e.SupplierID,
			Kind:        "rfq." + string(e.Decision),
			RFQID:       &rfqID,
			Payload:     payload,
		})
	default:
		h.logger.Warn("unexpected event type in rfq notification handler",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

func (h *RFQHandler) dispatch(ctx context.Context, event shared.DomainEvent, n Notification) {
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
		h.logger.Error("failed to send rfq notification",
			zap.String("kind", n.Kind),
			zap.String("recipient_id", n.RecipientID.String()),
			zap.Error(err),
		)
	}
}
