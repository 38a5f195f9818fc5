package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/shared"
)

// CreateProductRequest registers a supplier's catalog entry
type CreateProductRequest struct {
	Name       string
	SKU        string
	SupplierID uuid.UUID
	UnitPrice  decimal.Decimal
	Stock      int64
}

// ProductResponse is the product snapshot returned to callers
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Stock      int64           `json:"stock"`
	SoldCount  int64           `json:"sold_count"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ListProductsFilter narrows and paginates product listings
type ListProductsFilter struct {
	Page       int
	PageSize   int
	SupplierID *uuid.UUID
	InStock    bool
}

// ToProductResponse maps a product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		SupplierID: p.SupplierID,
		UnitPrice:  p.UnitPrice,
		Stock:      p.Stock,
		SoldCount:  p.SoldCount,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ProductService handles catalog reads and admin-side product registration.
// The catalog is a leaf the order core reads and mutates transactionally.
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.SKU, req.SupplierID, req.UnitPrice, req.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ListProductsFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.InStock {
		domainFilter.Filters["in_stock"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses, total, nil
}
