package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/domain/rfq"
	"github.com/tradelink/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRFQRepository implements the RFQ Repository using GORM
type GormRFQRepository struct {
	db *gorm.DB
}

// NewGormRFQRepository creates a new GormRFQRepository
func NewGormRFQRepository(db *gorm.DB) *GormRFQRepository {
	return &GormRFQRepository{db: db}
}

// FindByID loads an RFQ with its quotes
func (r *GormRFQRepository) FindByID(ctx context.Context, id uuid.UUID) (*rfq.RFQ, error) {
	var result rfq.RFQ
	if err := r.db.WithContext(ctx).
		Preload("Quotes").
		First(&result, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// FindByQuoteID loads the RFQ owning the given quote
func (r *GormRFQRepository) FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*rfq.RFQ, error) {
	var quote rfq.Quote
	if err := r.db.WithContext(ctx).
		First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, quote.RFQID)
}

// FindAll finds RFQs with filtering and pagination
func (r *GormRFQRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rfq.RFQ, error) {
	var rfqs []rfq.RFQ
	query := r.applyFilter(r.db.WithContext(ctx).Model(&rfq.RFQ{}), filter)

	if err := query.Preload("Quotes").Find(&rfqs).Error; err != nil {
		return nil, err
	}
	return rfqs, nil
}

// Count counts RFQs matching the filter
func (r *GormRFQRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&rfq.RFQ{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates the RFQ and its quotes
func (r *GormRFQRepository) Save(ctx context.Context, aggregate *rfq.RFQ) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Quotes").Save(aggregate).Error; err != nil {
			return err
		}
		for i := range aggregate.Quotes {
			aggregate.Quotes[i].RFQID = aggregate.ID
			if err := tx.Save(&aggregate.Quotes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock persists the RFQ and its quotes with an optimistic version
// check so concurrent negotiation steps cannot silently overwrite each other.
func (r *GormRFQRepository) SaveWithLock(ctx context.Context, aggregate *rfq.RFQ) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		row := tx.Model(&rfq.RFQ{}).
			Where("id = ?", aggregate.ID).
			Select("version").
			Scan(&currentVersion)
		if row.Error != nil {
			return row.Error
		}
		if row.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != aggregate.Version {
			return shared.ErrConcurrencyConflict
		}

		aggregate.Version++
		aggregate.UpdatedAt = time.Now()

		result := tx.Model(&rfq.RFQ{}).
			Where("id = ? AND version = ?", aggregate.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":     aggregate.Status,
				"expires_at": aggregate.ExpiresAt,
				"version":    aggregate.Version,
				"updated_at": aggregate.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		for i := range aggregate.Quotes {
			aggregate.Quotes[i].RFQID = aggregate.ID
			if err := tx.Save(&aggregate.Quotes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// applyFilter applies filter options including pagination and ordering
func (r *GormRFQRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, RFQSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRFQRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "buyer_id":
			query = query.Where("buyer_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

// Ensure GormRFQRepository implements the RFQ Repository
var _ rfq.Repository = (*GormRFQRepository)(nil)
