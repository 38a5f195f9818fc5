package dto

import "github.com/shopspring/decimal"

// CreateProductRequest registers a catalog entry
type CreateProductRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=255"`
	SKU        string          `json:"sku" binding:"required,min=1,max=100"`
	SupplierID string          `json:"supplier_id" binding:"required,uuid"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	Stock      int64           `json:"stock" binding:"min=0"`
}

// ListProductsRequest narrows product listings
type ListProductsRequest struct {
	ListRequest
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	InStock    bool   `form:"in_stock"`
}
