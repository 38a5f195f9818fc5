package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements the order Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds orders with filtering and pagination
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts the order and its items
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	if err := r.db.WithContext(ctx).Omit("Items").Create(o).Error; err != nil {
		return err
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if err := r.db.WithContext(ctx).Create(&o.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus applies a status transition with a compare-and-swap guard on
// the previous status and version. The aggregate already carries the target
// status; zero rows matched means a concurrent writer won and the caller
// re-reads to decide whether the race was benign.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, previous order.Status) (bool, error) {
	currentVersion := o.Version

	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND status = ? AND version = ?", o.ID, previous, currentVersion).
		Updates(map[string]interface{}{
			"status":              o.Status,
			"cancellation_reason": o.CancellationReason,
			"cancelled_at":        o.CancelledAt,
			"version":             currentVersion + 1,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	o.Version = currentVersion + 1
	return true, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "buyer_id":
			query = query.Where("buyer_id = ?", value)
		case "supplier_id":
			query = query.Where(
				"id IN (?)",
				r.db.Model(&order.OrderItem{}).Select("order_id").Where("supplier_id = ?", value),
			)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormOrderRepository implements the order Repository
var _ order.Repository = (*GormOrderRepository)(nil)
