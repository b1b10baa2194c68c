package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() InvoiceSource {
	return InvoiceSource{
		OrderID:            uuid.New(),
		OrderNumber:        "SO-2026-00042",
		CustomerName:       "Sam Okafor",
		CustomerPhone:      "555-0142",
		Subtotal:           decimal.RequireFromString("200.00"),
		Discount:           decimal.RequireFromString("20.00"),
		DiscountPercentage: decimal.RequireFromString("10"),
		Total:              decimal.RequireFromString("180.00"),
		PaymentMethod:      "cash",
		IssuedAt:           time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Lines: []InvoiceSourceLine{
			{
				ProductID:         uuid.New(),
				ProductName:       "Glazed Mug",
				SKU:               "MUG-01",
				Quantity:          4,
				OriginalUnitPrice: decimal.RequireFromString("25.00"),
				UnitPrice:         decimal.RequireFromString("25.00"),
				Amount:            decimal.RequireFromString("100.00"),
			},
			{
				ProductID:         uuid.New(),
				ProductName:       "Serving Bowl",
				SKU:               "BWL-03",
				Quantity:          2,
				OriginalUnitPrice: decimal.RequireFromString("50.00"),
				UnitPrice:         decimal.RequireFromString("40.00"),
				Amount:            decimal.RequireFromString("80.00"),
			},
		},
	}
}

func TestNewInvoiceFromOrder(t *testing.T) {
	src := testSource()

	invoice, err := NewInvoiceFromOrder(uuid.New(), src)
	require.NoError(t, err)

	assert.Equal(t, "SO-2026-00042", invoice.InvoiceNumber)
	assert.Equal(t, src.OrderID, invoice.OrderID)
	assert.Equal(t, InvoiceStatusActive, invoice.Status)
	assert.True(t, invoice.Total.Equal(src.Total))
	require.Len(t, invoice.Items, 2)
	assert.True(t, invoice.Items[0].DiscountPercentage.IsZero())
	assert.True(t, invoice.Items[1].DiscountPercentage.Equal(decimal.RequireFromString("20")))
}

func TestInvoiceSearchTermsLowercased(t *testing.T) {
	invoice, err := NewInvoiceFromOrder(uuid.New(), testSource())
	require.NoError(t, err)

	assert.Contains(t, invoice.SearchTerms, "so-2026-00042")
	assert.Contains(t, invoice.SearchTerms, "sam okafor")
	assert.Contains(t, invoice.SearchTerms, "glazed mug")
	assert.Contains(t, invoice.SearchTerms, "bwl-03")
	assert.Equal(t, invoice.SearchTerms, toLowerOnly(invoice.SearchTerms))

	assert.True(t, invoice.MatchesSearch("SAM"))
	assert.True(t, invoice.MatchesSearch(""))
	assert.False(t, invoice.MatchesSearch("teapot"))
}

func toLowerOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

func TestNewInvoiceRequiresLines(t *testing.T) {
	src := testSource()
	src.Lines = nil

	_, err := NewInvoiceFromOrder(uuid.New(), src)
	assert.Error(t, err)
}

func TestInvoiceMarkCancelled(t *testing.T) {
	invoice, err := NewInvoiceFromOrder(uuid.New(), testSource())
	require.NoError(t, err)

	require.NoError(t, invoice.MarkCancelled())
	assert.Equal(t, InvoiceStatusCancelled, invoice.Status)
	assert.False(t, invoice.IsActive())

	assert.Error(t, invoice.MarkCancelled())
}
