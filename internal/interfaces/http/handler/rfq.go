package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprfq "github.com/tradelink/backend/internal/application/rfq"
	"github.com/tradelink/backend/internal/domain/rfq"
	"github.com/tradelink/backend/internal/interfaces/http/dto"
)

// RFQHandler exposes the request-for-quote negotiation over HTTP
type RFQHandler struct {
	BaseHandler
	service *apprfq.Service
}

// NewRFQHandler creates a new RFQHandler
func NewRFQHandler(service *apprfq.Service) *RFQHandler {
	return &RFQHandler{service: service}
}

// RegisterRoutes registers RFQ and quote routes on the given group
func (h *RFQHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/rfqs", h.Create)
	rg.GET("/rfqs", h.List)
	rg.GET("/rfqs/:id", h.GetByID)
	rg.POST("/rfqs/:id/quotes", h.SubmitQuote)
	rg.POST("/quotes/:id/respond", h.RespondToQuote)
}

// Create handles POST /rfqs. The authenticated actor is the buyer.
func (h *RFQHandler) Create(c *gin.Context) {
	actorID, _, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateRFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid request body: "+err.Error())
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid supplier_id: "+req.SupplierID)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid product_id: "+req.ProductID)
		return
	}

	response, err := h.service.Create(c.Request.Context(), apprfq.CreateRFQRequest{
		BuyerID:     actorID,
		SupplierID:  supplierID,
		ProductID:   productID,
		Quantity:    req.Quantity,
		TargetPrice: req.TargetPrice,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// SubmitQuote handles POST /rfqs/:id/quotes. The authenticated actor is
// the supplier.
func (h *RFQHandler) SubmitQuote(c *gin.Context) {
	actorID, _, ok := h.requireActor(c)
	if !ok {
		return
	}
	rfqID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.service.SubmitQuote(c.Request.Context(), apprfq.SubmitQuoteRequest{
		RFQID:             rfqID,
		SupplierID:        actorID,
		UnitPrice:         req.UnitPrice,
		AgreedQuantity:    req.AgreedQuantity,
		DepositPercentage: req.DepositPercentage,
		ValidityDays:      req.ValidityDays,
		Notes:             req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// RespondToQuote handles POST /quotes/:id/respond. The authenticated actor
// is the buyer.
func (h *RFQHandler) RespondToQuote(c *gin.Context) {
	actorID, _, ok := h.requireActor(c)
	if !ok {
		return
	}
	quoteID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RespondToQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.service.RespondToQuote(c.Request.Context(), apprfq.RespondToQuoteRequest{
		QuoteID:      quoteID,
		BuyerID:      actorID,
		Decision:     rfq.Decision(req.Decision),
		CounterPrice: req.CounterPrice,
		CounterNote:  req.CounterNote,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// GetByID handles GET /rfqs/:id
func (h *RFQHandler) GetByID(c *gin.Context) {
	rfqID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.GetByID(c.Request.Context(), rfqID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// List handles GET /rfqs
func (h *RFQHandler) List(c *gin.Context) {
	var req dto.ListRFQsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid query parameters: "+err.Error())
		return
	}

	filter := apprfq.ListRFQsFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.BuyerID != "" {
		buyerID, _ := uuid.Parse(req.BuyerID)
		filter.BuyerID = &buyerID
	}
	if req.SupplierID != "" {
		supplierID, _ := uuid.Parse(req.SupplierID)
		filter.SupplierID = &supplierID
	}
	if req.Status != "" {
		status := rfq.Status(req.Status)
		if !status.IsValid() {
			h.Error(c, dto.ErrCodeValidation, "Unknown RFQ status: "+req.Status)
			return
		}
		filter.Status = &status
	}

	responses, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, responses, total, page, pageSize)
}
