package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/shared"
)

func TestProductRepositorySaveAndFind(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a product", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)
		supplierID := uuid.New()
		product := seedProduct(t, db, supplierID, 50)

		loaded, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, loaded.ID)
		assert.Equal(t, product.SKU, loaded.SKU)
		assert.Equal(t, supplierID, loaded.SupplierID)
		assert.Equal(t, int64(50), loaded.Stock)
	})

	t.Run("missing product reports not found", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByIDs returns only existing products", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)
		productA := seedProduct(t, db, uuid.New(), 10)
		productB := seedProduct(t, db, uuid.New(), 10)

		products, err := repo.FindByIDs(ctx, []uuid.UUID{productA.ID, productB.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, products, 2)

		empty, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestProductRepositoryFindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by supplier and stock availability", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)
		supplierID := uuid.New()

		inStock := seedProduct(t, db, supplierID, 5)
		seedProduct(t, db, supplierID, 0)
		seedProduct(t, db, uuid.New(), 5)

		filter := shared.DefaultFilter()
		filter.Filters["supplier_id"] = supplierID
		filter.Filters["in_stock"] = true

		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, inStock.ID, products[0].ID)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestProductRepositoryIncrementSoldCount(t *testing.T) {
	ctx := context.Background()

	t.Run("accumulates the lifetime counter", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)
		product := seedProduct(t, db, uuid.New(), 100)

		require.NoError(t, repo.IncrementSoldCount(ctx, product.ID, 3))
		require.NoError(t, repo.IncrementSoldCount(ctx, product.ID, 4))

		loaded, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), loaded.SoldCount)
		assert.Equal(t, int64(100), loaded.Stock)
	})

	t.Run("missing product reports not found", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormProductRepository(db)
		assert.ErrorIs(t, repo.IncrementSoldCount(ctx, uuid.New(), 1), shared.ErrNotFound)
	})
}
