package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/rfq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
// Each call gets its own named memory database so parallel tests never share
// state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&order.Order{},
		&order.OrderItem{},
		&rfq.RFQ{},
		&rfq.Quote{},
	))
	return db
}

// seedProduct inserts a product with the given supplier and stock level
func seedProduct(t *testing.T, db *gorm.DB, supplierID uuid.UUID, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Test Product", "SKU-"+uuid.NewString()[:8], supplierID, decimal.NewFromInt(10), stock)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

// seedPlacedOrder inserts a placed order with one line per product quantity
func seedPlacedOrder(t *testing.T, db *gorm.DB, buyerID uuid.UUID, lines map[uuid.UUID]int64, supplierID uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(buyerID, "unpaid")
	require.NoError(t, err)
	for productID, quantity := range lines {
		_, err = o.AddItem(productID, supplierID, quantity, decimal.NewFromInt(10), nil, nil)
		require.NoError(t, err)
	}
	require.NoError(t, o.Place())
	o.ClearDomainEvents()

	repo := NewGormOrderRepository(db)
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}
