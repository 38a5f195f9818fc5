package rfq

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/rfq"
	"github.com/tradelink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service owns the RFQ negotiation protocol: submission, quoting,
// counter-offers, and acceptance or rejection. Conversion to an order is
// performed by the order service at checkout, not here.
type Service struct {
	rfqRepo        rfq.Repository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new RFQ Service
func NewService(rfqRepo rfq.Repository, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		rfqRepo:     rfqRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher used for post-commit notification events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a negotiation. The product must exist and belong to the
// supplier the buyer is asking.
func (s *Service) Create(ctx context.Context, req CreateRFQRequest) (*RFQResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.BelongsTo(req.SupplierID) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product does not belong to the requested supplier")
	}

	r, err := rfq.NewRFQ(req.BuyerID, req.SupplierID, req.ProductID, req.Quantity, req.TargetPrice, req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if err := s.rfqRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	response := ToRFQResponse(r)
	return &response, nil
}

// SubmitQuote records a supplier's priced response. A resubmission after a
// counter-offer updates the same quote row and resets it to pending.
func (s *Service) SubmitQuote(ctx context.Context, req SubmitQuoteRequest) (*QuoteResponse, error) {
	r, err := s.rfqRepo.FindByID(ctx, req.RFQID)
	if err != nil {
		return nil, err
	}

	quote, err := r.SubmitQuote(req.SupplierID, req.UnitPrice, req.AgreedQuantity, req.DepositPercentage, req.ValidityDays, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.rfqRepo.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// RespondToQuote applies a buyer decision: accept (within the validity
// window), reject, or counter with a price for the supplier to consider.
func (s *Service) RespondToQuote(ctx context.Context, req RespondToQuoteRequest) (*QuoteResponse, error) {
	r, err := s.rfqRepo.FindByQuoteID(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}

	quote, err := r.Respond(req.BuyerID, req.QuoteID, req.Decision, req.CounterPrice, req.CounterNote)
	if err != nil {
		return nil, err
	}

	if err := s.rfqRepo.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// GetByID retrieves an RFQ with its quotes
func (s *Service) GetByID(ctx context.Context, rfqID uuid.UUID) (*RFQResponse, error) {
	r, err := s.rfqRepo.FindByID(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	response := ToRFQResponse(r)
	return &response, nil
}

// List retrieves RFQs with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListRFQsFilter) ([]RFQResponse, int64, error) {
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

	rfqs, err := s.rfqRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.rfqRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToRFQResponses(rfqs), total, nil
}

// publishEvents drains the aggregate's buffered events into the bus.
// Failures are logged and never propagate to the caller.
func (s *Service) publishEvents(ctx context.Context, r *rfq.RFQ) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range r.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish rfq event",
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.Error(err),
			)
		}
	}
	r.ClearDomainEvents()
}
