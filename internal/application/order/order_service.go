package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/rfq"
	"github.com/tradelink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var oneHundred = decimal.NewFromInt(100)

// Service owns the order lifecycle: checkout with atomic stock reservation
// and role-scoped status transitions with restock side effects.
type Service struct {
	txScope        TransactionScope
	orderRepo      order.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new order Service
func NewService(txScope TransactionScope, orderRepo order.Repository, logger *zap.Logger) *Service {
	return &Service{
		txScope:   txScope,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// SetEventPublisher sets the publisher used for post-commit notification events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrder places an order inside one atomic unit of work: line totals and
// the order total are recomputed server-side, stock is reserved per distinct
// product with a guarded decrement, the order and its items are inserted, and
// any linked accepted RFQs are marked converted. A failure anywhere rolls back
// every prior reservation in the same call.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if req.BuyerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Buyer ID cannot be empty")
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order must contain at least one item")
	}

	var created *order.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		productIDs := make([]uuid.UUID, 0, len(req.Items))
		seen := make(map[uuid.UUID]struct{}, len(req.Items))
		for _, item := range req.Items {
			if _, ok := seen[item.ProductID]; !ok {
				seen[item.ProductID] = struct{}{}
				productIDs = append(productIDs, item.ProductID)
			}
		}

		products, err := repos.Products().FindByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]int, len(products))
		for idx := range products {
			byID[products[idx].ID] = idx
		}

		o, err := order.NewOrder(req.BuyerID, req.PaymentStatus)
		if err != nil {
			return err
		}

		deposit := decimal.Zero
		linkedRFQs := make(map[uuid.UUID]*rfq.RFQ)
		for _, input := range req.Items {
			idx, ok := byID[input.ProductID]
			if !ok {
				return shared.NewDomainError("NOT_FOUND", "Product not found: "+input.ProductID.String())
			}
			product := &products[idx]

			item, err := o.AddItem(input.ProductID, product.SupplierID, input.Quantity, input.UnitPrice, input.RFQID, input.QuoteID)
			if err != nil {
				return err
			}

			if input.RFQID == nil {
				continue
			}
			linked, ok := linkedRFQs[*input.RFQID]
			if !ok {
				linked, err = repos.RFQs().FindByID(ctx, *input.RFQID)
				if err != nil {
					return err
				}
				if linked.BuyerID != req.BuyerID {
					return shared.ErrUnauthorized
				}
				linkedRFQs[*input.RFQID] = linked
			}
			quote := linked.QuoteByID(*input.QuoteID)
			if quote == nil {
				return shared.NewDomainError("NOT_FOUND", "Quote not found: "+input.QuoteID.String())
			}
			if quote.Status != rfq.QuoteStatusAccepted {
				return shared.NewDomainError("INVALID_STATE", "Linked quote has not been accepted")
			}
			deposit = deposit.Add(item.Price.Mul(quote.DepositPercentage).Div(oneHundred))
		}
		o.SetDeposit(deposit)

		// Reserve stock per distinct product; the guarded decrement is the
		// only concurrency control. A guard miss aborts the whole checkout.
		for productID, quantity := range o.QuantityByProduct() {
			if err := repos.Stock().Reserve(ctx, productID, quantity); err != nil {
				return err
			}
			if err := repos.Products().IncrementSoldCount(ctx, productID, quantity); err != nil {
				return err
			}
		}

		if err := o.Place(); err != nil {
			return err
		}
		if err := repos.Orders().Create(ctx, o); err != nil {
			return err
		}

		for _, linked := range linkedRFQs {
			if err := linked.MarkConverted(); err != nil {
				return err
			}
			if err := repos.RFQs().SaveWithLock(ctx, linked); err != nil {
				return err
			}
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, created.GetDomainEvents())
	created.ClearDomainEvents()

	response := ToOrderResponse(created)
	return &response, nil
}

// TransitionStatus validates the actor and the role's transition table, then
// applies the change with a compare-and-swap guard so a concurrent duplicate
// transition becomes a silent no-op rather than a double-apply. The first
// move into cancelled or returned restocks every item exactly once.
func (s *Service) TransitionStatus(ctx context.Context, req TransitionStatusRequest) (*OrderResponse, error) {
	if !req.NextStatus.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown order status: "+req.NextStatus.String())
	}
	if !req.ActorRole.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown actor role: "+string(req.ActorRole))
	}

	var result *order.Order
	var events []shared.DomainEvent
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		if err := authorizeActor(o, req.ActorRole, req.ActorID); err != nil {
			return err
		}

		// Already in the target state: success with no restock and no event.
		if o.Status == req.NextStatus {
			result = o
			return nil
		}

		previous := o.Status
		if err := o.ApplyTransition(req.ActorRole, req.NextStatus, req.Note); err != nil {
			return err
		}

		applied, err := repos.Orders().UpdateStatus(ctx, o, previous)
		if err != nil {
			return err
		}
		if !applied {
			// Lost a race. If the winner moved the order into the same
			// target, this request is "already in target state".
			current, err := repos.Orders().FindByID(ctx, req.OrderID)
			if err != nil {
				return err
			}
			if current.Status == req.NextStatus {
				result = current
				return nil
			}
			return shared.ErrConcurrencyConflict
		}

		if order.RequiresRestock(previous, req.NextStatus) {
			for productID, quantity := range o.QuantityByProduct() {
				if err := repos.Stock().Release(ctx, productID, quantity); err != nil {
					return err
				}
			}
		}

		events = o.GetDomainEvents()
		o.ClearDomainEvents()
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToOrderResponse(result)
	return &response, nil
}

// GetByID retrieves an order snapshot
func (s *Service) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListOrdersFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if filter.BuyerID != nil {
		domainFilter.Filters["buyer_id"] = *filter.BuyerID
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// authorizeActor enforces the ownership and supplier-match rules. Sellers
// may act only when every item's product belongs to them; orders spanning
// multiple suppliers are admin-managed.
func authorizeActor(o *order.Order, role order.Role, actorID uuid.UUID) error {
	switch role {
	case order.RoleBuyer:
		if o.BuyerID != actorID {
			return shared.ErrUnauthorized
		}
	case order.RoleSeller:
		if !o.IsSoleSupplier(actorID) {
			return shared.ErrUnauthorized
		}
	case order.RoleAdmin:
		// Admins manage any order.
	default:
		return shared.ErrUnauthorized
	}
	return nil
}

// publishEvents hands events to the bus after commit. Delivery failures are
// logged and never propagate: the transition itself has already happened.
func (s *Service) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.Error(err),
			)
		}
	}
}
