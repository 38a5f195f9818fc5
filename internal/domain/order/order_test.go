package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), "unpaid")
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in pending status", func(t *testing.T) {
		buyerID := uuid.New()
		o, err := NewOrder(buyerID, "deposit_paid")
		require.NoError(t, err)
		require.NotNil(t, o)

		assert.Equal(t, buyerID, o.BuyerID)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, "deposit_paid", o.PaymentStatus)
		assert.Empty(t, o.Items)
		assert.True(t, o.TotalAmount.IsZero())
		assert.True(t, o.DepositAmount.IsZero())
		assert.True(t, o.BalanceDue.IsZero())
		assert.NotEmpty(t, o.ID)
		assert.Equal(t, 1, o.GetVersion())
		assert.Empty(t, o.GetDomainEvents())
	})

	t.Run("fails with empty buyer", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, "unpaid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Buyer ID cannot be empty")
	})
}

func TestNewOrderItem(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()
	supplierID := uuid.New()

	t.Run("computes line total from unit price", func(t *testing.T) {
		item, err := NewOrderItem(orderID, productID, supplierID, 3, decimal.NewFromFloat(12.50), nil, nil)
		require.NoError(t, err)
		assert.True(t, item.Price.Equal(decimal.NewFromFloat(37.50)), item.Price.String())
		assert.Equal(t, int64(3), item.Quantity)
		assert.Nil(t, item.RFQID)
		assert.Nil(t, item.QuoteID)
	})

	t.Run("fails with nil product", func(t *testing.T) {
		_, err := NewOrderItem(orderID, uuid.Nil, supplierID, 1, decimal.NewFromInt(1), nil, nil)
		require.Error(t, err)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		_, err := NewOrderItem(orderID, productID, supplierID, 0, decimal.NewFromInt(1), nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Quantity must be positive")
	})

	t.Run("fails with negative unit price", func(t *testing.T) {
		_, err := NewOrderItem(orderID, productID, supplierID, 1, decimal.NewFromInt(-1), nil, nil)
		require.Error(t, err)
	})

	t.Run("requires rfq and quote references together", func(t *testing.T) {
		rfqID := uuid.New()
		_, err := NewOrderItem(orderID, productID, supplierID, 1, decimal.NewFromInt(1), &rfqID, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be provided together")

		quoteID := uuid.New()
		_, err = NewOrderItem(orderID, productID, supplierID, 1, decimal.NewFromInt(1), nil, &quoteID)
		require.Error(t, err)

		item, err := NewOrderItem(orderID, productID, supplierID, 1, decimal.NewFromInt(1), &rfqID, &quoteID)
		require.NoError(t, err)
		assert.Equal(t, rfqID, *item.RFQID)
		assert.Equal(t, quoteID, *item.QuoteID)
	})
}

func TestOrderAddItem(t *testing.T) {
	t.Run("recomputes totals as items accumulate", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.AddItem(uuid.New(), uuid.New(), 2, decimal.NewFromInt(10), nil, nil)
		require.NoError(t, err)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(20)))

		_, err = o.AddItem(uuid.New(), uuid.New(), 1, decimal.NewFromFloat(5.25), nil, nil)
		require.NoError(t, err)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(25.25)))
		assert.True(t, o.BalanceDue.Equal(o.TotalAmount))
		assert.Len(t, o.Items, 2)
	})

	t.Run("invalid item leaves totals untouched", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.AddItem(uuid.New(), uuid.New(), -1, decimal.NewFromInt(10), nil, nil)
		require.Error(t, err)
		assert.Empty(t, o.Items)
		assert.True(t, o.TotalAmount.IsZero())
	})
}

func TestOrderSetDeposit(t *testing.T) {
	setup := func(t *testing.T) *Order {
		o := newTestOrder(t)
		_, err := o.AddItem(uuid.New(), uuid.New(), 1, decimal.NewFromInt(100), nil, nil)
		require.NoError(t, err)
		return o
	}

	t.Run("derives balance due", func(t *testing.T) {
		o := setup(t)
		o.SetDeposit(decimal.NewFromInt(30))
		assert.True(t, o.DepositAmount.Equal(decimal.NewFromInt(30)))
		assert.True(t, o.BalanceDue.Equal(decimal.NewFromInt(70)))
	})

	t.Run("clamps deposit to the order total", func(t *testing.T) {
		o := setup(t)
		o.SetDeposit(decimal.NewFromInt(250))
		assert.True(t, o.DepositAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, o.BalanceDue.IsZero())
	})

	t.Run("treats negative deposit as zero", func(t *testing.T) {
		o := setup(t)
		o.SetDeposit(decimal.NewFromInt(-10))
		assert.True(t, o.DepositAmount.IsZero())
		assert.True(t, o.BalanceDue.Equal(decimal.NewFromInt(100)))
	})
}

func TestOrderPlace(t *testing.T) {
	t.Run("moves pending order with items to placed", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.AddItem(uuid.New(), uuid.New(), 1, decimal.NewFromInt(10), nil, nil)
		require.NoError(t, err)

		require.NoError(t, o.Place())
		assert.Equal(t, StatusPlaced, o.Status)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())

		placed, ok := events[0].(*PlacedEvent)
		require.True(t, ok)
		assert.Equal(t, o.BuyerID, placed.BuyerID)
		assert.Equal(t, 1, placed.ItemCount)
		assert.True(t, placed.TotalAmount.Equal(decimal.NewFromInt(10)))
	})

	t.Run("fails without items", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.Place()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "without items")
	})

	t.Run("fails when already placed", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.AddItem(uuid.New(), uuid.New(), 1, decimal.NewFromInt(10), nil, nil)
		require.NoError(t, err)
		require.NoError(t, o.Place())

		err = o.Place()
		require.Error(t, err)
	})
}

func TestOrderApplyTransition(t *testing.T) {
	placedOrder := func(t *testing.T) *Order {
		o := newTestOrder(t)
		_, err := o.AddItem(uuid.New(), uuid.New(), 2, decimal.NewFromInt(10), nil, nil)
		require.NoError(t, err)
		require.NoError(t, o.Place())
		o.ClearDomainEvents()
		return o
	}

	t.Run("seller confirms a placed order", func(t *testing.T) {
		o := placedOrder(t)
		require.NoError(t, o.ApplyTransition(RoleSeller, StatusConfirmed, ""))
		assert.Equal(t, StatusConfirmed, o.Status)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(*StatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, StatusPlaced, changed.FromStatus)
		assert.Equal(t, StatusConfirmed, changed.ToStatus)
		assert.Equal(t, RoleSeller, changed.ActorRole)
	})

	t.Run("cancellation records reason and timestamp", func(t *testing.T) {
		o := placedOrder(t)
		require.NoError(t, o.ApplyTransition(RoleBuyer, StatusCancelled, "ordered by mistake"))
		assert.Equal(t, StatusCancelled, o.Status)
		assert.Equal(t, "ordered by mistake", o.CancellationReason)
		require.NotNil(t, o.CancelledAt)
		assert.True(t, o.IsTerminal())
	})

	t.Run("disallowed transition leaves state untouched", func(t *testing.T) {
		o := placedOrder(t)
		err := o.ApplyTransition(RoleBuyer, StatusShipped, "")
		require.Error(t, err)
		assert.Equal(t, StatusPlaced, o.Status)
		assert.Empty(t, o.GetDomainEvents())
	})

	t.Run("terminal order rejects all transitions", func(t *testing.T) {
		o := placedOrder(t)
		require.NoError(t, o.ApplyTransition(RoleBuyer, StatusCancelled, ""))
		o.ClearDomainEvents()

		err := o.ApplyTransition(RoleAdmin, StatusConfirmed, "")
		require.Error(t, err)
		assert.Empty(t, o.GetDomainEvents())
	})
}

func TestOrderSupplierQueries(t *testing.T) {
	supplierA := uuid.New()
	supplierB := uuid.New()
	productX := uuid.New()

	build := func(t *testing.T, suppliers ...uuid.UUID) *Order {
		o := newTestOrder(t)
		for _, s := range suppliers {
			_, err := o.AddItem(uuid.New(), s, 1, decimal.NewFromInt(10), nil, nil)
			require.NoError(t, err)
		}
		return o
	}

	t.Run("SupplierIDs deduplicates", func(t *testing.T) {
		o := build(t, supplierA, supplierB, supplierA)
		ids := o.SupplierIDs()
		assert.Len(t, ids, 2)
		assert.Contains(t, ids, supplierA)
		assert.Contains(t, ids, supplierB)
	})

	t.Run("IsSoleSupplier", func(t *testing.T) {
		single := build(t, supplierA, supplierA)
		assert.True(t, single.IsSoleSupplier(supplierA))
		assert.False(t, single.IsSoleSupplier(supplierB))

		mixed := build(t, supplierA, supplierB)
		assert.False(t, mixed.IsSoleSupplier(supplierA))

		empty := newTestOrder(t)
		assert.False(t, empty.IsSoleSupplier(supplierA))
	})

	t.Run("QuantityByProduct aggregates duplicate lines", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.AddItem(productX, supplierA, 2, decimal.NewFromInt(10), nil, nil)
		require.NoError(t, err)
		_, err = o.AddItem(productX, supplierA, 3, decimal.NewFromInt(10), nil, nil)
		require.NoError(t, err)

		quantities := o.QuantityByProduct()
		require.Len(t, quantities, 1)
		assert.Equal(t, int64(5), quantities[productX])
	})

	t.Run("RFQReferences returns distinct linked RFQs", func(t *testing.T) {
		o := newTestOrder(t)
		rfqID := uuid.New()
		quoteID := uuid.New()
		_, err := o.AddItem(uuid.New(), supplierA, 1, decimal.NewFromInt(10), &rfqID, &quoteID)
		require.NoError(t, err)
		_, err = o.AddItem(uuid.New(), supplierA, 1, decimal.NewFromInt(10), nil, nil)
		require.NoError(t, err)

		refs := o.RFQReferences()
		require.Len(t, refs, 1)
		assert.Equal(t, rfqID, refs[0])
	})
}
