package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/rfq"
	"go.uber.org/zap"
)

func negotiationRFQ(t *testing.T) *rfq.RFQ {
	t.Helper()
	r, err := rfq.NewRFQ(uuid.New(), uuid.New(), uuid.New(), 100, decimal.NewFromInt(8), nil)
	require.NoError(t, err)
	return r
}

func TestRFQHandlerEventTypes(t *testing.T) {
	h := NewRFQHandler(&captureNotifier{}, newMemoryDedupStore(), zap.NewNop())
	assert.ElementsMatch(t,
		[]string{rfq.EventTypeRFQSubmitted, rfq.EventTypeQuoteSubmitted, rfq.EventTypeQuoteResponded},
		h.EventTypes(),
	)
}

func TestRFQHandlerSubmittedEvent(t *testing.T) {
	notifier := &captureNotifier{}
	h := NewRFQHandler(notifier, newMemoryDedupStore(), zap.NewNop())

	r := negotiationRFQ(t)
	event := r.GetDomainEvents()[0]

	require.NoError(t, h.Handle(context.Background(), event))

	supplierMsgs := notifier.sentTo(r.SupplierID)
	require.Len(t, supplierMsgs, 1)
	assert.Equal(t, "rfq.received", supplierMsgs[0].Kind)
	require.NotNil(t, supplierMsgs[0].RFQID)
	assert.Equal(t, r.ID, *supplierMsgs[0].RFQID)
	assert.Equal(t, r.BuyerID, supplierMsgs[0].Payload["buyer_id"])
	assert.Empty(t, notifier.sentTo(r.BuyerID))
}

func TestRFQHandlerQuoteSubmittedEvent(t *testing.T) {
	notifier := &captureNotifier{}
	h := NewRFQHandler(notifier, newMemoryDedupStore(), zap.NewNop())

	r := negotiationRFQ(t)
	r.ClearDomainEvents()
	quote, err := r.SubmitQuote(r.SupplierID, decimal.NewFromInt(9), 100, decimal.Zero, 14, "")
	require.NoError(t, err)
	event := r.GetDomainEvents()[0]

	require.NoError(t, h.Handle(context.Background(), event))

	buyerMsgs := notifier.sentTo(r.BuyerID)
	require.Len(t, buyerMsgs, 1)
	assert.Equal(t, "rfq.quoted", buyerMsgs[0].Kind)
	assert.Equal(t, quote.ID, buyerMsgs[0].Payload["quote_id"])
	assert.Empty(t, notifier.sentTo(r.SupplierID))
}

func TestRFQHandlerQuoteRespondedEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("decision routes to the supplier with the decision in the kind", func(t *testing.T) {
		notifier := &captureNotifier{}
		h := NewRFQHandler(notifier, newMemoryDedupStore(), zap.NewNop())

		r := negotiationRFQ(t)
		quote, err := r.SubmitQuote(r.SupplierID, decimal.NewFromInt(9), 100, decimal.Zero, 14, "")
		require.NoError(t, err)
		r.ClearDomainEvents()
		_, err = r.Respond(r.BuyerID, quote.ID, rfq.DecisionAccepted, nil, "")
		require.NoError(t, err)
		event := r.GetDomainEvents()[0]

		require.NoError(t, h.Handle(ctx, event))

		supplierMsgs := notifier.sentTo(r.SupplierID)
		require.Len(t, supplierMsgs, 1)
		assert.Equal(t, "rfq.accepted", supplierMsgs[0].Kind)
		assert.Equal(t, "accepted", supplierMsgs[0].Payload["decision"])
	})

	t.Run("counter-offer carries the counter price", func(t *testing.T) {
		notifier := &captureNotifier{}
		h := NewRFQHandler(notifier, newMemoryDedupStore(), zap.NewNop())

		r := negotiationRFQ(t)
		quote, err := r.SubmitQuote(r.SupplierID, decimal.NewFromInt(9), 100, decimal.Zero, 14, "")
		require.NoError(t, err)
		r.ClearDomainEvents()
		counterPrice := decimal.NewFromFloat(8.25)
		_, err = r.Respond(r.BuyerID, quote.ID, rfq.DecisionCountered, &counterPrice, "")
		require.NoError(t, err)
		event := r.GetDomainEvents()[0]

		require.NoError(t, h.Handle(ctx, event))

		supplierMsgs := notifier.sentTo(r.SupplierID)
		require.Len(t, supplierMsgs, 1)
		assert.Equal(t, "rfq.countered", supplierMsgs[0].Kind)
		price, ok := supplierMsgs[0].Payload["counter_price"].(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, price.Equal(counterPrice))
	})
}

func TestRFQHandlerDedup(t *testing.T) {
	notifier := &captureNotifier{}
	h := NewRFQHandler(notifier, newMemoryDedupStore(), zap.NewNop())

	r := negotiationRFQ(t)
	event := r.GetDomainEvents()[0]

	require.NoError(t, h.Handle(context.Background(), event))
	require.NoError(t, h.Handle(context.Background(), event))
	assert.Len(t, notifier.sentTo(r.SupplierID), 1)
}
