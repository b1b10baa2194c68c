package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCatalogLine(t *testing.T, name string, price string, qty int64) LineItem {
	t.Helper()
	line, err := NewCatalogLine(uuid.New(), name, "SKU-"+name, decimal.RequireFromString(price), qty)
	require.NoError(t, err)
	return line
}

func TestCartAddMergesSameProduct(t *testing.T) {
	line := mustCatalogLine(t, "Glazed Mug", "25.00", 2)

	cart := NewCart().Add(line).Add(line)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(4), cart.Items[0].Quantity)
}

func TestCartAddIgnoresNonPositiveQuantity(t *testing.T) {
	line := mustCatalogLine(t, "Vase", "40.00", 1)
	line.Quantity = 0

	cart := NewCart().Add(line)

	assert.True(t, cart.IsEmpty())
}

func TestCartRemove(t *testing.T) {
	mug := mustCatalogLine(t, "Mug", "25.00", 1)
	bowl := mustCatalogLine(t, "Bowl", "18.00", 2)

	cart := NewCart().Add(mug).Add(bowl).Remove(mug.ProductID)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Bowl", cart.Items[0].ProductName)
}

func TestCartSetQuantityIgnoresInvalid(t *testing.T) {
	mug := mustCatalogLine(t, "Mug", "25.00", 3)
	cart := NewCart().Add(mug)

	cart = cart.SetQuantity(mug.ProductID, 0)
	assert.Equal(t, int64(3), cart.Items[0].Quantity)

	cart = cart.SetQuantity(uuid.New(), 5)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(3), cart.Items[0].Quantity)

	cart = cart.SetQuantity(mug.ProductID, 7)
	assert.Equal(t, int64(7), cart.Items[0].Quantity)
}

func TestCartSetPriceKeepsOriginal(t *testing.T) {
	mug := mustCatalogLine(t, "Mug", "25.00", 2)
	cart := NewCart().Add(mug)

	cart = cart.SetPrice(mug.ProductID, decimal.RequireFromString("20.00"))

	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].OriginalUnitPrice.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, cart.Items[0].CurrentUnitPrice.Equal(decimal.RequireFromString("20.00")))
}

func TestCartSetPriceIgnoresNonPositive(t *testing.T) {
	mug := mustCatalogLine(t, "Mug", "25.00", 2)
	cart := NewCart().Add(mug)

	cart = cart.SetPrice(mug.ProductID, decimal.Zero)

	assert.True(t, cart.Items[0].CurrentUnitPrice.Equal(decimal.RequireFromString("25.00")))
}

func TestCartTotalsWithLineDiscounts(t *testing.T) {
	mug := mustCatalogLine(t, "Mug", "25.00", 4)
	bowl := mustCatalogLine(t, "Bowl", "50.00", 2)

	cart := NewCart().Add(mug).Add(bowl)
	cart = cart.SetPrice(bowl.ProductID, decimal.RequireFromString("40.00"))

	totals := cart.Totals()

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("200.00")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.AfterDiscount.Equal(decimal.RequireFromString("180.00")))
	assert.True(t, totals.Discount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, totals.DiscountPercentage.Equal(decimal.RequireFromString("10")), "pct %s", totals.DiscountPercentage)
}

func TestCartTotalsEmptyCart(t *testing.T) {
	totals := NewCart().Totals()

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.AfterDiscount.IsZero())
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.DiscountPercentage.IsZero())
}

func TestCartClear(t *testing.T) {
	cart := NewCart().Add(mustCatalogLine(t, "Mug", "25.00", 1)).Clear()

	assert.True(t, cart.IsEmpty())
}

func TestNewAdHocLine(t *testing.T) {
	line, err := NewAdHocLine("Custom glaze job", decimal.RequireFromString("75.00"), 1)
	require.NoError(t, err)

	assert.True(t, line.AdHoc)
	assert.NotEqual(t, uuid.Nil, line.ProductID)
	assert.True(t, line.OriginalUnitPrice.Equal(line.CurrentUnitPrice))
}

func TestNewCatalogLineValidation(t *testing.T) {
	_, err := NewCatalogLine(uuid.New(), "Mug", "SKU-1", decimal.RequireFromString("25.00"), 0)
	assert.Error(t, err)

	_, err = NewCatalogLine(uuid.New(), "Mug", "SKU-1", decimal.RequireFromString("-1.00"), 1)
	assert.Error(t, err)
}
