package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyUSDFromFloat(10.50)
	b := NewMoneyUSDFromFloat(4.25)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.RequireFromString("14.75")))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.RequireFromString("6.25")))

	prod := a.MultiplyByInt(3)
	assert.True(t, prod.Amount().Equal(decimal.RequireFromString("31.5")))
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	usd := NewMoneyUSDFromFloat(1)
	eur, err := NewMoney(decimal.NewFromInt(1), EUR)
	require.NoError(t, err)

	_, err = usd.Add(eur)
	assert.Error(t, err)

	_, err = usd.Subtract(eur)
	assert.Error(t, err)
}

func TestLineTotal(t *testing.T) {
	total, err := LineTotal(NewMoneyUSDFromFloat(25), 4)
	require.NoError(t, err)
	assert.True(t, total.Amount().Equal(decimal.RequireFromString("100")))

	_, err = LineTotal(NewMoneyUSDFromFloat(25), 0)
	assert.Error(t, err)
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	original := NewMoneyUSDFromFloat(19.99)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))
}

func TestCalculatePercentage(t *testing.T) {
	m := NewMoneyUSDFromFloat(200)

	pct := m.CalculatePercentage(decimal.NewFromInt(10))
	assert.True(t, pct.Amount().Equal(decimal.RequireFromString("20")))
}
