package notification

import (
	"context"

	"github.com/google/uuid"
)

// Notification is the side-channel event handed to the external delivery
// collaborator (email/SMS/in-app). The core's contract is "emit the event":
// delivery guarantees belong to the collaborator.
type Notification struct {
	RecipientID uuid.UUID              `json:"recipient_id"`
	Kind        string                 `json:"kind"`
	OrderID     *uuid.UUID             `json:"order_id,omitempty"`
	RFQID       *uuid.UUID             `json:"rfq_id,omitempty"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// Notifier delivers notifications. Implementations are fire-and-forget from
// the core's point of view; errors are logged by the callers, never retried.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
