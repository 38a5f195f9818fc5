package notify

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/application/notification"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotifierSend(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	notifier := NewLogNotifier(zap.New(core))

	orderID := uuid.New()
	recipientID := uuid.New()
	err := notifier.Send(context.Background(), notification.Notification{
		RecipientID: recipientID,
		Kind:        "order.placed",
		OrderID:     &orderID,
		Payload:     map[string]interface{}{"status": "placed"},
	})
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "notification dispatched", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, recipientID.String(), fields["recipient_id"])
	assert.Equal(t, "order.placed", fields["kind"])
	assert.Equal(t, orderID.String(), fields["order_id"])
	assert.Contains(t, string(fields["payload"].([]byte)), "placed")
}

func TestLogNotifierUnmarshalablePayload(t *testing.T) {
	notifier := NewLogNotifier(zap.NewNop())

	err := notifier.Send(context.Background(), notification.Notification{
		RecipientID: uuid.New(),
		Kind:        "order.placed",
		Payload:     map[string]interface{}{"bad": make(chan int)},
	})
	assert.Error(t, err)
}
