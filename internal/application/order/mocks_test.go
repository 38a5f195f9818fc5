package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/inventory"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/rfq"
	"github.com/tradelink/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, previous order.Status) (bool, error) {
	args := m.Called(ctx, o, previous)
	return args.Bool(0), args.Error(1)
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

// MockStockEngine is a mock implementation of inventory.ReservationEngine
type MockStockEngine struct {
	mock.Mock
}

func (m *MockStockEngine) Reserve(ctx context.Context, productID uuid.UUID, quantity int64) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockStockEngine) Release(ctx context.Context, productID uuid.UUID, quantity int64) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

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

// stubTxRepos wires the mocks into one transactional view
type stubTxRepos struct {
	orders   *MockOrderRepository
	products *MockProductRepository
	stock    *MockStockEngine
	rfqs     *MockRFQRepository
}

func (s *stubTxRepos) Orders() order.Repository            { return s.orders }
func (s *stubTxRepos) Products() catalog.ProductRepository { return s.products }
func (s *stubTxRepos) Stock() inventory.ReservationEngine  { return s.stock }
func (s *stubTxRepos) RFQs() rfq.Repository                { return s.rfqs }

// stubTxScope runs the unit of work directly against the stub repositories
type stubTxScope struct {
	repos *stubTxRepos
}

func (s *stubTxScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.repos)
}

// capturePublisher records published events in order
type capturePublisher struct {
	events []shared.DomainEvent
	err    error
}

func (p *capturePublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return p.err
}
