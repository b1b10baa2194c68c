package sales

import (
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is a cart entry. Lines are either backed by a catalog
// product or ad-hoc one-offs typed in at the till; ad-hoc lines carry a
// generated id and are excluded from stock and customer accounting.
type LineItem struct {
	ProductID         uuid.UUID
	ProductName       string
	SKU               string
	AdHoc             bool
	Quantity          int64
	OriginalUnitPrice decimal.Decimal
	CurrentUnitPrice  decimal.Decimal
}

// NewCatalogLine creates a line item backed by a catalog product.
// Both prices start at the catalog price; SetPrice can lower the
// current price for an ad-hoc per-sale discount.
func NewCatalogLine(productID uuid.UUID, name, sku string, unitPrice decimal.Decimal, quantity int64) (LineItem, error) {
	if productID == uuid.Nil {
		return LineItem{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return LineItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return LineItem{
		ProductID:         productID,
		ProductName:       name,
		SKU:               sku,
		Quantity:          quantity,
		OriginalUnitPrice: unitPrice,
		CurrentUnitPrice:  unitPrice,
	}, nil
}

// NewAdHocLine creates a line item with no catalog backing
func NewAdHocLine(name string, unitPrice decimal.Decimal, quantity int64) (LineItem, error) {
	if name == "" {
		return LineItem{}, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if quantity <= 0 {
		return LineItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return LineItem{
		ProductID:         uuid.New(),
		ProductName:       name,
		AdHoc:             true,
		Quantity:          quantity,
		OriginalUnitPrice: unitPrice,
		CurrentUnitPrice:  unitPrice,
	}, nil
}

// LineAmount returns current unit price x quantity for this line
func (l LineItem) LineAmount() decimal.Decimal {
	return l.CurrentUnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// OriginalAmount returns original unit price x quantity for this line
func (l LineItem) OriginalAmount() decimal.Decimal {
	return l.OriginalUnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart is the in-memory order being built during one checkout flow.
// It is an ordered set of line items, unique by product id, and is
// never persisted: it lives in process memory until checkout clears it.
// All operations are value-semantic and return the new cart state.
type Cart struct {
	Items []LineItem
}

// NewCart returns an empty cart
func NewCart() Cart {
	return Cart{Items: []LineItem{}}
}

// Add merges the line into the cart. If the product is already present
// its quantity is increased; otherwise the line is appended. Lines with
// non-positive quantity are ignored.
func (c Cart) Add(line LineItem) Cart {
	if line.Quantity <= 0 {
		return c
	}

	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)

	for i := range items {
		if items[i].ProductID == line.ProductID {
			items[i].Quantity += line.Quantity
			return Cart{Items: items}
		}
	}

	return Cart{Items: append(items, line)}
}

// Remove deletes the line for the given product; no-op if absent
func (c Cart) Remove(productID uuid.UUID) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return Cart{Items: items}
}

// SetQuantity replaces the quantity of an existing line.
// No-op if the quantity is non-positive or the product is absent.
func (c Cart) SetQuantity(productID uuid.UUID, quantity int64) Cart {
	if quantity <= 0 {
		return c
	}

	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	return Cart{Items: items}
}

// SetPrice replaces the current unit price of an existing line,
// enabling per-sale discounting independent of the catalog price.
// No-op if the price is non-positive or the product is absent.
func (c Cart) SetPrice(productID uuid.UUID, price decimal.Decimal) Cart {
	if !price.IsPositive() {
		return c
	}

	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)

	for i := range items {
		if items[i].ProductID == productID {
			items[i].CurrentUnitPrice = price
			break
		}
	}
	return Cart{Items: items}
}

// Clear empties the cart
func (c Cart) Clear() Cart {
	return NewCart()
}

// IsEmpty returns true if the cart has no items
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Totals holds the monetary summary of a cart
type Totals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	AfterDiscount      decimal.Decimal `json:"after_discount"`
	Discount           decimal.Decimal `json:"discount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// Totals computes the cart summary. An empty cart yields all zeros;
// the discount percentage is zero whenever the subtotal is zero.
func (c Cart) Totals() Totals {
	subtotal := decimal.Zero
	afterDiscount := decimal.Zero

	for _, item := range c.Items {
		subtotal = subtotal.Add(item.OriginalAmount())
		afterDiscount = afterDiscount.Add(item.LineAmount())
	}

	discount := subtotal.Sub(afterDiscount)
	discountPct := decimal.Zero
	if !subtotal.IsZero() {
		discountPct = discount.Div(subtotal).Mul(decimal.NewFromInt(100))
	}

	return Totals{
		Subtotal:           subtotal,
		AfterDiscount:      afterDiscount,
		Discount:           discount,
		DiscountPercentage: discountPct,
	}
}
