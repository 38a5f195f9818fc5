package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("ascending; DROP TABLE orders"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "unit_price", ValidateSortField("unit_price", ProductSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", ProductSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("password", ProductSortFields, "created_at"))
	assert.Equal(t, "total_amount", ValidateSortField(" total_amount ", OrderSortFields, "created_at"))
	assert.Equal(t, "expires_at", ValidateSortField("expires_at", RFQSortFields, "created_at"))
}
