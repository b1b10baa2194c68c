package catalog

import (
	"testing"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int64) *Product {
	t.Helper()
	p, err := NewProduct(uuid.New(), "MUG-01", "Glazed Mug", "mugs",
		valueobject.NewMoneyUSDFromFloat(25), stock)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()
	p, err := NewProduct(tenantID, "MUG-01", "Glazed Mug", "mugs",
		valueobject.NewMoneyUSDFromFloat(25), 10)
	require.NoError(t, err)

	assert.Equal(t, tenantID, p.TenantID)
	assert.Equal(t, ProductStatusActive, p.Status)
	assert.Equal(t, int64(10), p.Stock)
	require.Len(t, p.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeProductCreated, p.GetDomainEvents()[0].EventType())
}

func TestNewProductValidation(t *testing.T) {
	tests := []struct {
		name  string
		sku   string
		pname string
		price float64
		stock int64
		code  string
	}{
		{"empty sku", "", "Mug", 25, 1, "INVALID_SKU"},
		{"empty name", "MUG-01", "", 25, 1, "INVALID_NAME"},
		{"negative price", "MUG-01", "Mug", -1, 1, "INVALID_PRICE"},
		{"negative stock", "MUG-01", "Mug", 25, -1, "INVALID_STOCK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(uuid.New(), tt.sku, tt.pname, "mugs",
				valueobject.NewMoneyUSDFromFloat(tt.price), tt.stock)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	p := newTestProduct(t, 3)

	p.AdjustStock(-5)
	assert.Equal(t, int64(0), p.Stock)

	p.AdjustStock(7)
	assert.Equal(t, int64(7), p.Stock)

	p.AdjustStock(-2)
	assert.Equal(t, int64(5), p.Stock)
}

func TestIsLowStock(t *testing.T) {
	p := newTestProduct(t, 10)

	assert.True(t, p.IsLowStock(10))
	assert.False(t, p.IsLowStock(5))
}

func TestArchiveAndActivate(t *testing.T) {
	p := newTestProduct(t, 1)

	require.NoError(t, p.Archive())
	assert.False(t, p.IsActive())
	assert.Error(t, p.Archive())

	p.Activate()
	assert.True(t, p.IsActive())
}

func TestStockValue(t *testing.T) {
	p := newTestProduct(t, 4)

	assert.True(t, p.StockValue().Equal(decimal.RequireFromString("100")))
}

func TestSetCostPrice(t *testing.T) {
	p := newTestProduct(t, 1)

	require.NoError(t, p.SetCostPrice(valueobject.NewMoneyUSDFromFloat(9.5)))
	require.NotNil(t, p.CostPrice)
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("9.5")))
}
