package partner

import (
	"testing"

	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tenantID := uuid.New()
	c, err := NewCustomer(tenantID, "Jordan Reyes", "555-0142")
	require.NoError(t, err)

	assert.Equal(t, tenantID, c.TenantID)
	assert.Equal(t, int64(0), c.TotalPurchases)
	assert.True(t, c.TotalSpent.IsZero())
	assert.Nil(t, c.LastPurchaseAt)
}

func TestNewCustomerRequiresName(t *testing.T) {
	_, err := NewCustomer(uuid.New(), "", "555-0142")
	assert.Error(t, err)
}

func TestRecordPurchase(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Jordan Reyes", "555-0142")
	require.NoError(t, err)

	require.NoError(t, c.RecordPurchase(valueobject.NewMoneyUSDFromFloat(180)))
	require.NoError(t, c.RecordPurchase(valueobject.NewMoneyUSDFromFloat(45.50)))

	assert.Equal(t, int64(2), c.TotalPurchases)
	assert.True(t, c.TotalSpent.Equal(decimal.RequireFromString("225.5")))
	require.NotNil(t, c.LastPurchaseAt)
}

func TestRecordPurchaseRejectsNegative(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Jordan Reyes", "555-0142")
	require.NoError(t, err)

	err = c.RecordPurchase(valueobject.NewMoneyUSDFromFloat(-10))
	require.Error(t, err)
	assert.Equal(t, int64(0), c.TotalPurchases)
}

func TestCustomerUpdate(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Jordan Reyes", "555-0142")
	require.NoError(t, err)

	require.NoError(t, c.Update("Jordan R.", "555-0143", "jordan@example.com", "12 Kiln St"))
	assert.Equal(t, "Jordan R.", c.Name)
	assert.Equal(t, "jordan@example.com", c.Email)

	assert.Error(t, c.Update("", "555-0143", "", ""))
}
