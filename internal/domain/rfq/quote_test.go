package rfq

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/shared"
)

func TestQuoteValidityWindow(t *testing.T) {
	q := newQuote(uuid.New(), uuid.New(), decimal.NewFromInt(9), 100, decimal.Zero, 14, "")

	assert.Equal(t, q.SubmittedAt.AddDate(0, 0, 14), q.ValidUntil())
	assert.False(t, q.IsExpired(q.SubmittedAt.AddDate(0, 0, 13)))
	assert.True(t, q.IsExpired(q.SubmittedAt.AddDate(0, 0, 15)))
}

func TestQuoteAccept(t *testing.T) {
	now := time.Now()

	t.Run("accepts a pending quote", func(t *testing.T) {
		q := newQuote(uuid.New(), uuid.New(), decimal.NewFromInt(9), 100, decimal.Zero, 14, "")
		require.NoError(t, q.accept(now))
		assert.Equal(t, QuoteStatusAccepted, q.Status)
	})

	t.Run("refuses a quote past its validity window", func(t *testing.T) {
		q := newQuote(uuid.New(), uuid.New(), decimal.NewFromInt(9), 100, decimal.Zero, 1, "")
		err := q.accept(q.SubmittedAt.AddDate(0, 0, 2))
		assert.ErrorIs(t, err, shared.ErrQuoteExpired)
		assert.Equal(t, QuoteStatusPending, q.Status)
	})

	t.Run("refuses a non-pending quote", func(t *testing.T) {
		q := newQuote(uuid.New(), uuid.New(), decimal.NewFromInt(9), 100, decimal.Zero, 14, "")
		require.NoError(t, q.reject(now))
		require.Error(t, q.accept(now))
	})
}

func TestQuoteCounter(t *testing.T) {
	now := time.Now()

	t.Run("records the counter offer", func(t *testing.T) {
		q := newQuote(uuid.New(), uuid.New(), decimal.NewFromInt(9), 100, decimal.Zero, 14, "")
		require.NoError(t, q.counter(decimal.NewFromInt(8), "too high", now))
		assert.Equal(t, QuoteStatusCountered, q.Status)
		require.NotNil(t, q.CounterPrice)
		assert.True(t, q.CounterPrice.Equal(decimal.NewFromInt(8)))
		assert.Equal(t, "too high", q.CounterNote)
	})

	t.Run("requires a positive counter price", func(t *testing.T) {
		q := newQuote(uuid.New(), uuid.New(), decimal.NewFromInt(9), 100, decimal.Zero, 14, "")
		require.Error(t, q.counter(decimal.Zero, "", now))
		assert.Equal(t, QuoteStatusPending, q.Status)
	})

	t.Run("resubmit clears the counter", func(t *testing.T) {
		q := newQuote(uuid.New(), uuid.New(), decimal.NewFromInt(9), 100, decimal.Zero, 14, "")
		require.NoError(t, q.counter(decimal.NewFromInt(8), "note", now))

		q.resubmit(decimal.NewFromFloat(8.50), 100, decimal.NewFromInt(20), 7, "revised")
		assert.Equal(t, QuoteStatusPending, q.Status)
		assert.Nil(t, q.CounterPrice)
		assert.Empty(t, q.CounterNote)
		assert.Equal(t, "revised", q.Notes)
		assert.Equal(t, 7, q.ValidityDays)
	})
}
