// Package notify provides the outbound notification adapter. The core's
// contract stops at emitting the notification; delivery guarantees belong to
// whatever sits behind the Notifier implementation.
package notify

import (
	"context"
	"encoding/json"

	"github.com/tradelink/backend/internal/application/notification"
	"go.uber.org/zap"
)

// LogNotifier writes notifications to the structured log. It stands in for a
// real delivery channel (email, SMS, webhook) in development and tests.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

// Send records the notification in the log
func (n *LogNotifier) Send(ctx context.Context, msg notification.Notification) error {
	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("recipient_id", msg.RecipientID.String()),
		zap.String("kind", msg.Kind),
		zap.ByteString("payload", payload),
	}
	if msg.OrderID != nil {
		fields = append(fields, zap.String("order_id", msg.OrderID.String()))
	}
	if msg.RFQID != nil {
		fields = append(fields, zap.String("rfq_id", msg.RFQID.String()))
	}

	n.logger.Info("notification dispatched", fields...)
	return nil
}

// Ensure LogNotifier implements Notifier
var _ notification.Notifier = (*LogNotifier)(nil)
