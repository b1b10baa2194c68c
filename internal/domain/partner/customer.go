package partner

import (
	"strings"
	"time"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer represents a customer of the shop.
// TotalPurchases and TotalSpent are lifetime activity counters: they
// are bumped once per order at creation time and never decremented on
// cancellation, and never recomputed from order history.
type Customer struct {
	shared.TenantAggregateRoot
	Name           string          `gorm:"type:varchar(200);not null"`
	Phone          string          `gorm:"type:varchar(50);not null;index"`
	Email          string          `gorm:"type:varchar(200)"`
	Address        string          `gorm:"type:varchar(500)"`
	TotalPurchases int64           `gorm:"not null;default:0"`
	TotalSpent     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastPurchaseAt *time.Time
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, name, phone string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}

	customer := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               phone,
		TotalPurchases:      0,
		TotalSpent:          decimal.Zero,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, phone, email, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if strings.TrimSpace(phone) == "" {
		return shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}

	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()

	return nil
}

// RecordPurchase bumps the lifetime purchase counters for one order
func (c *Customer) RecordPurchase(orderTotal valueobject.Money) error {
	if orderTotal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Order total cannot be negative")
	}

	now := time.Now()
	c.TotalPurchases++
	c.TotalSpent = c.TotalSpent.Add(orderTotal.Amount())
	c.LastPurchaseAt = &now
	c.UpdatedAt = now

	return nil
}

// GetTotalSpentMoney returns the lifetime spend as Money
func (c *Customer) GetTotalSpentMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.TotalSpent)
}
