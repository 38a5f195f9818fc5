package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/tradelink/backend/internal/application/catalog"
	"github.com/tradelink/backend/internal/interfaces/http/dto"
)

// ProductHandler exposes the product catalog over HTTP
type ProductHandler struct {
	BaseHandler
	service *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers product catalog routes on the given group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.Create)
	rg.GET("/products", h.List)
	rg.GET("/products/:id", h.GetByID)
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid request body: "+err.Error())
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid supplier_id: "+req.SupplierID)
		return
	}

	response, err := h.service.Create(c.Request.Context(), appcatalog.CreateProductRequest{
		Name:       req.Name,
		SKU:        req.SKU,
		SupplierID: supplierID,
		UnitPrice:  req.UnitPrice,
		Stock:      req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid query parameters: "+err.Error())
		return
	}

	filter := appcatalog.ListProductsFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		InStock:  req.InStock,
	}
	if req.SupplierID != "" {
		supplierID, _ := uuid.Parse(req.SupplierID)
		filter.SupplierID = &supplierID
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
