package rfq

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/rfq"
	"github.com/tradelink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MockRFQRepository is a mock implementation of rfq.Repository
type MockRFQRepository struct {
	mock.Mock
}

func (m *MockRFQRepository) FindByID(ctx context.Context, id uuid.UUID) (*rfq.RFQ, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rfq.RFQ), args.Error(1)
}

func (m *MockRFQRepository) FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*rfq.RFQ, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rfq.RFQ), args.Error(1)
}

func (m *MockRFQRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rfq.RFQ, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]rfq.RFQ), args.Error(1)
}

func (m *MockRFQRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRFQRepository) Save(ctx context.Context, r *rfq.RFQ) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRFQRepository) SaveWithLock(ctx context.Context, r *rfq.RFQ) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementSoldCount(ctx context.Context, id uuid.UUID, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

type capturePublisher struct {
	events []shared.DomainEvent
}

func (p *capturePublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type rfqFixture struct {
	service   *Service
	rfqs      *MockRFQRepository
	products  *MockProductRepository
	publisher *capturePublisher
}

func newRFQFixture() *rfqFixture {
	rfqs := new(MockRFQRepository)
	products := new(MockProductRepository)
	publisher := &capturePublisher{}

	svc := NewService(rfqs, products, zap.NewNop())
	svc.SetEventPublisher(publisher)

	return &rfqFixture{service: svc, rfqs: rfqs, products: products, publisher: publisher}
}

func quotedRFQ(t *testing.T, buyerID, supplierID uuid.UUID) (*rfq.RFQ, *rfq.Quote) {
	t.Helper()
	r, err := rfq.NewRFQ(buyerID, supplierID, uuid.New(), 100, decimal.NewFromInt(8), nil)
	require.NoError(t, err)
	quote, err := r.SubmitQuote(supplierID, decimal.NewFromInt(9), 100, decimal.NewFromInt(30), 14, "")
	require.NoError(t, err)
	r.ClearDomainEvents()
	return r, quote
}

func TestRFQServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a negotiation for the supplier's product", func(t *testing.T) {
		f := newRFQFixture()
		buyerID := uuid.New()
		supplierID := uuid.New()
		product, err := catalog.NewProduct("Widget", "SKU-001", supplierID, decimal.NewFromInt(10), 500)
		require.NoError(t, err)

		f.products.On("FindByID", ctx, product.ID).Return(product, nil)
		f.rfqs.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, CreateRFQRequest{
			BuyerID:     buyerID,
			SupplierID:  supplierID,
			ProductID:   product.ID,
			Quantity:    200,
			TargetPrice: decimal.NewFromInt(8),
		})
		require.NoError(t, err)

		assert.Equal(t, rfq.StatusPending, resp.Status)
		assert.Equal(t, buyerID, resp.BuyerID)
		assert.Equal(t, int64(200), resp.Quantity)
		assert.Empty(t, resp.Quotes)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, rfq.EventTypeRFQSubmitted, f.publisher.events[0].EventType())
	})

	t.Run("rejects a product of a different supplier", func(t *testing.T) {
		f := newRFQFixture()
		product, err := catalog.NewProduct("Widget", "SKU-001", uuid.New(), decimal.NewFromInt(10), 500)
		require.NoError(t, err)

		f.products.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err = f.service.Create(ctx, CreateRFQRequest{
			BuyerID:     uuid.New(),
			SupplierID:  uuid.New(),
			ProductID:   product.ID,
			Quantity:    10,
			TargetPrice: decimal.NewFromInt(8),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong to the requested supplier")
		f.rfqs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("propagates product lookup failure", func(t *testing.T) {
		f := newRFQFixture()
		productID := uuid.New()
		f.products.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, CreateRFQRequest{
			BuyerID:    uuid.New(),
			SupplierID: uuid.New(),
			ProductID:  productID,
			Quantity:   10,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestRFQServiceSubmitQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("records the quote and saves with the version lock", func(t *testing.T) {
		f := newRFQFixture()
		buyerID := uuid.New()
		supplierID := uuid.New()
		r, err := rfq.NewRFQ(buyerID, supplierID, uuid.New(), 100, decimal.NewFromInt(8), nil)
		require.NoError(t, err)
		r.ClearDomainEvents()

		f.rfqs.On("FindByID", ctx, r.ID).Return(r, nil)
		f.rfqs.On("SaveWithLock", ctx, r).Return(nil)

		resp, err := f.service.SubmitQuote(ctx, SubmitQuoteRequest{
			RFQID:             r.ID,
			SupplierID:        supplierID,
			UnitPrice:         decimal.NewFromFloat(8.50),
			AgreedQuantity:    90,
			DepositPercentage: decimal.NewFromInt(20),
			ValidityDays:      7,
			Notes:             "volume pricing",
		})
		require.NoError(t, err)

		assert.Equal(t, rfq.QuoteStatusPending, resp.Status)
		assert.Equal(t, int64(90), resp.AgreedQuantity)
		assert.Equal(t, resp.SubmittedAt.AddDate(0, 0, 7), resp.ValidUntil)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, rfq.EventTypeQuoteSubmitted, f.publisher.events[0].EventType())
		f.rfqs.AssertExpectations(t)
	})

	t.Run("wrong supplier is rejected before any write", func(t *testing.T) {
		f := newRFQFixture()
		r, _ := quotedRFQ(t, uuid.New(), uuid.New())

		f.rfqs.On("FindByID", ctx, r.ID).Return(r, nil)

		_, err := f.service.SubmitQuote(ctx, SubmitQuoteRequest{
			RFQID:        r.ID,
			SupplierID:   uuid.New(),
			UnitPrice:    decimal.NewFromInt(9),
			ValidityDays: 7,
		})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		f.rfqs.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("propagates a lost optimistic lock", func(t *testing.T) {
		f := newRFQFixture()
		supplierID := uuid.New()
		r, err := rfq.NewRFQ(uuid.New(), supplierID, uuid.New(), 100, decimal.NewFromInt(8), nil)
		require.NoError(t, err)
		r.ClearDomainEvents()

		f.rfqs.On("FindByID", ctx, r.ID).Return(r, nil)
		f.rfqs.On("SaveWithLock", ctx, r).Return(shared.ErrConcurrencyConflict)

		_, err = f.service.SubmitQuote(ctx, SubmitQuoteRequest{
			RFQID:        r.ID,
			SupplierID:   supplierID,
			UnitPrice:    decimal.NewFromInt(9),
			ValidityDays: 7,
		})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Empty(t, f.publisher.events)
	})
}

func TestRFQServiceRespondToQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer accepts the quote", func(t *testing.T) {
		f := newRFQFixture()
		buyerID := uuid.New()
		r, quote := quotedRFQ(t, buyerID, uuid.New())

		f.rfqs.On("FindByQuoteID", ctx, quote.ID).Return(r, nil)
		f.rfqs.On("SaveWithLock", ctx, r).Return(nil)

		resp, err := f.service.RespondToQuote(ctx, RespondToQuoteRequest{
			QuoteID:  quote.ID,
			BuyerID:  buyerID,
			Decision: rfq.DecisionAccepted,
		})
		require.NoError(t, err)

		assert.Equal(t, rfq.QuoteStatusAccepted, resp.Status)
		assert.Equal(t, rfq.StatusAccepted, r.Status)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, rfq.EventTypeQuoteResponded, f.publisher.events[0].EventType())
	})

	t.Run("buyer counters with a price", func(t *testing.T) {
		f := newRFQFixture()
		buyerID := uuid.New()
		r, quote := quotedRFQ(t, buyerID, uuid.New())

		f.rfqs.On("FindByQuoteID", ctx, quote.ID).Return(r, nil)
		f.rfqs.On("SaveWithLock", ctx, r).Return(nil)

		counterPrice := decimal.NewFromFloat(8.25)
		resp, err := f.service.RespondToQuote(ctx, RespondToQuoteRequest{
			QuoteID:      quote.ID,
			BuyerID:      buyerID,
			Decision:     rfq.DecisionCountered,
			CounterPrice: &counterPrice,
			CounterNote:  "target is 8.25",
		})
		require.NoError(t, err)

		assert.Equal(t, rfq.QuoteStatusCountered, resp.Status)
		require.NotNil(t, resp.CounterPrice)
		assert.True(t, resp.CounterPrice.Equal(counterPrice))
		assert.Equal(t, rfq.StatusQuoted, r.Status)
	})

	t.Run("unknown quote is not found", func(t *testing.T) {
		f := newRFQFixture()
		quoteID := uuid.New()
		f.rfqs.On("FindByQuoteID", ctx, quoteID).Return(nil, shared.ErrNotFound)

		_, err := f.service.RespondToQuote(ctx, RespondToQuoteRequest{
			QuoteID:  quoteID,
			BuyerID:  uuid.New(),
			Decision: rfq.DecisionAccepted,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("responding after the deadline fails with quote expired", func(t *testing.T) {
		f := newRFQFixture()
		buyerID := uuid.New()
		supplierID := uuid.New()
		expiry := time.Now().Add(40 * time.Millisecond)
		r, err := rfq.NewRFQ(buyerID, supplierID, uuid.New(), 100, decimal.NewFromInt(8), &expiry)
		require.NoError(t, err)
		quote, err := r.SubmitQuote(supplierID, decimal.NewFromInt(9), 100, decimal.Zero, 14, "")
		require.NoError(t, err)
		r.ClearDomainEvents()
		time.Sleep(60 * time.Millisecond)

		f.rfqs.On("FindByQuoteID", ctx, quote.ID).Return(r, nil)

		_, err = f.service.RespondToQuote(ctx, RespondToQuoteRequest{
			QuoteID:  quote.ID,
			BuyerID:  buyerID,
			Decision: rfq.DecisionAccepted,
		})
		assert.ErrorIs(t, err, shared.ErrQuoteExpired)
		f.rfqs.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestRFQServiceQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID reports the effective status for an overdue RFQ", func(t *testing.T) {
		f := newRFQFixture()
		expiry := time.Now().Add(30 * time.Millisecond)
		r, err := rfq.NewRFQ(uuid.New(), uuid.New(), uuid.New(), 100, decimal.NewFromInt(8), &expiry)
		require.NoError(t, err)
		r.ClearDomainEvents()
		time.Sleep(50 * time.Millisecond)

		f.rfqs.On("FindByID", ctx, r.ID).Return(r, nil)

		resp, err := f.service.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, rfq.StatusExpired, resp.Status)
		assert.Equal(t, rfq.StatusPending, r.Status)
	})

	t.Run("List applies filters and pagination defaults", func(t *testing.T) {
		f := newRFQFixture()
		supplierID := uuid.New()
		status := rfq.StatusQuoted
		r, _ := quotedRFQ(t, uuid.New(), supplierID)

		f.rfqs.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
			return filter.Page == 1 && filter.PageSize == 20 &&
				filter.Filters["supplier_id"] == supplierID &&
				filter.Filters["status"] == "quoted"
		})).Return([]rfq.RFQ{*r}, nil)
		f.rfqs.On("Count", ctx, mock.Anything).Return(int64(1), nil)

		items, total, err := f.service.List(ctx, ListRFQsFilter{
			SupplierID: &supplierID,
			Status:     &status,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, r.ID, items[0].ID)
		require.Len(t, items[0].Quotes, 1)
	})
}
