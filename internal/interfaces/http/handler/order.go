package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apporder "github.com/tradelink/backend/internal/application/order"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/interfaces/http/dto"
)

// OrderHandler exposes the order lifecycle over HTTP
type OrderHandler struct {
	BaseHandler
	service *apporder.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *apporder.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers order routes on the given group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.Create)
	rg.GET("/orders", h.List)
	rg.GET("/orders/:id", h.GetByID)
	rg.POST("/orders/:id/transitions", h.TransitionStatus)
}

// Create handles POST /orders. The authenticated actor is the buyer.
func (h *OrderHandler) Create(c *gin.Context) {
	actorID, _, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid request body: "+err.Error())
		return
	}

	items := make([]apporder.CreateOrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.Error(c, dto.ErrCodeValidation, "Invalid product_id: "+item.ProductID)
			return
		}
		input := apporder.CreateOrderItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if (item.RFQID == nil) != (item.QuoteID == nil) {
			h.Error(c, dto.ErrCodeValidation, "rfq_id and quote_id must be provided together")
			return
		}
		if item.RFQID != nil {
			rfqID, err := uuid.Parse(*item.RFQID)
			if err != nil {
				h.Error(c, dto.ErrCodeValidation, "Invalid rfq_id: "+*item.RFQID)
				return
			}
			quoteID, err := uuid.Parse(*item.QuoteID)
			if err != nil {
				h.Error(c, dto.ErrCodeValidation, "Invalid quote_id: "+*item.QuoteID)
				return
			}
			input.RFQID = &rfqID
			input.QuoteID = &quoteID
		}
		items = append(items, input)
	}

	response, err := h.service.CreateOrder(c.Request.Context(), apporder.CreateOrderRequest{
		BuyerID:       actorID,
		PaymentStatus: req.PaymentStatus,
		Items:         items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// TransitionStatus handles POST /orders/:id/transitions
func (h *OrderHandler) TransitionStatus(c *gin.Context) {
	actorID, actorRole, ok := h.requireActor(c)
	if !ok {
		return
	}
	orderID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TransitionOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid request body: "+err.Error())
		return
	}

	nextStatus, err := order.ParseStatus(req.NextStatus)
	if err != nil {
		h.Error(c, dto.ErrCodeValidation, err.Error())
		return
	}
	role, err := order.ParseRole(actorRole)
	if err != nil {
		h.Error(c, dto.ErrCodeForbidden, err.Error())
		return
	}

	response, err := h.service.TransitionStatus(c.Request.Context(), apporder.TransitionStatusRequest{
		OrderID:    orderID,
		ActorRole:  role,
		ActorID:    actorID,
		NextStatus: nextStatus,
		Note:       req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// GetByID handles GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid query parameters: "+err.Error())
		return
	}

	filter := apporder.ListOrdersFilter{
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
		status, err := order.ParseStatus(req.Status)
		if err != nil {
			h.Error(c, dto.ErrCodeValidation, err.Error())
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
