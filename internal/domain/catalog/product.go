package catalog

import (
	"strings"
	"time"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

// Product represents a catalog product/SKU.
// Stock is tracked directly on the product; the shop has a single
// location, no per-warehouse breakdown.
type Product struct {
	shared.TenantAggregateRoot
	SKU       string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_sku,priority:2"`
	Name      string           `gorm:"type:varchar(200);not null"`
	Category  string           `gorm:"type:varchar(100);not null;index"`
	Price     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Stock     int64            `gorm:"not null;default:0"`
	Status    ProductStatus    `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(tenantID uuid.UUID, sku, name, category string, price valueobject.Money, stock int64) (*Product, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 strings.ToUpper(sku),
		Name:                name,
		Category:            category,
		Price:               price.Amount(),
		Stock:               stock,
		Status:              ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, category string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}

	p.Name = name
	p.Category = category
	p.UpdatedAt = time.Now()

	return nil
}

// SetPrice updates the catalog selling price
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price.Amount()
	p.UpdatedAt = time.Now()

	return nil
}

// SetCostPrice updates the cost price used for P&L reporting
func (p *Product) SetCostPrice(cost valueobject.Money) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}

	amount := cost.Amount()
	p.CostPrice = &amount
	p.UpdatedAt = time.Now()

	return nil
}

// AdjustStock applies a stock delta, flooring the result at zero.
// Negative deltas come from order creation, positive from cancellation.
func (p *Product) AdjustStock(delta int64) {
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.UpdatedAt = time.Now()
}

// Archive removes the product from active sale
func (p *Product) Archive() error {
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Product is already archived")
	}

	p.Status = ProductStatusArchived
	p.UpdatedAt = time.Now()

	return nil
}

// Activate restores an archived product
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
}

// IsActive returns true if the product is available for sale
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsLowStock reports whether stock is at or below the given threshold
func (p *Product) IsLowStock(threshold int64) bool {
	return p.Stock <= threshold
}

// GetPriceMoney returns the selling price as Money
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// StockValue returns stock x price, the product's inventory value
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Stock))
}
