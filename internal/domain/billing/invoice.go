package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusActive    InvoiceStatus = "active"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRefunded  InvoiceStatus = "refunded"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusActive, InvoiceStatusCancelled, InvoiceStatusRefunded:
		return true
	}
	return false
}

// InvoiceItem is a line on a materialized invoice
type InvoiceItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName        string          `gorm:"type:varchar(200);not null"`
	SKU                string          `gorm:"type:varchar(50)"`
	Quantity           int64           `gorm:"not null"`
	OriginalUnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Invoice is the read-optimized record materialized from a finalized
// order. Totals are copied from the order, never re-derived, so the
// two can always be reconciled line for line.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName       string          `gorm:"type:varchar(200);not null"`
	CustomerPhone      string          `gorm:"type:varchar(50)"`
	Items              []InvoiceItem   `gorm:"foreignKey:InvoiceID;references:ID"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	Total              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentMethod      string          `gorm:"type:varchar(20);not null"`
	Status             InvoiceStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	IssuedAt           time.Time       `gorm:"not null;index"`
	SearchTerms        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceSource carries everything needed to materialize an invoice
// from an order without the billing package importing sales.
type InvoiceSource struct {
	OrderID            uuid.UUID
	OrderNumber        string
	CustomerID         *uuid.UUID
	CustomerName       string
	CustomerPhone      string
	Subtotal           decimal.Decimal
	Discount           decimal.Decimal
	DiscountPercentage decimal.Decimal
	Total              decimal.Decimal
	PaymentMethod      string
	IssuedAt           time.Time
	Lines              []InvoiceSourceLine
}

// InvoiceSourceLine is one order line as seen by the materializer
type InvoiceSourceLine struct {
	ProductID         uuid.UUID
	ProductName       string
	SKU               string
	Quantity          int64
	OriginalUnitPrice decimal.Decimal
	UnitPrice         decimal.Decimal
	Amount            decimal.Decimal
}

// NewInvoiceFromOrder materializes an invoice from a finalized order.
// The invoice number reuses the order number so staff can quote one
// reference for both.
func NewInvoiceFromOrder(tenantID uuid.UUID, src InvoiceSource) (*Invoice, error) {
	if src.OrderNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(src.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice must have at least one line")
	}

	issuedAt := src.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	invoice := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       src.OrderNumber,
		OrderID:             src.OrderID,
		CustomerID:          src.CustomerID,
		CustomerName:        src.CustomerName,
		CustomerPhone:       src.CustomerPhone,
		Subtotal:            src.Subtotal,
		Discount:            src.Discount,
		DiscountPercentage:  src.DiscountPercentage,
		Total:               src.Total,
		PaymentMethod:       src.PaymentMethod,
		Status:              InvoiceStatusActive,
		IssuedAt:            issuedAt,
		Items:               make([]InvoiceItem, 0, len(src.Lines)),
	}

	now := time.Now()
	for _, line := range src.Lines {
		item := InvoiceItem{
			ID:                uuid.New(),
			InvoiceID:         invoice.ID,
			ProductID:         line.ProductID,
			ProductName:       line.ProductName,
			SKU:               line.SKU,
			Quantity:          line.Quantity,
			OriginalUnitPrice: line.OriginalUnitPrice,
			UnitPrice:         line.UnitPrice,
			Amount:            line.Amount,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if !line.OriginalUnitPrice.IsZero() {
			item.DiscountPercentage = line.OriginalUnitPrice.Sub(line.UnitPrice).
				Div(line.OriginalUnitPrice).
				Mul(decimal.NewFromInt(100))
		}
		invoice.Items = append(invoice.Items, item)
	}

	invoice.SearchTerms = buildSearchTerms(invoice)

	return invoice, nil
}

// buildSearchTerms flattens the fields staff search invoices by into a
// single lowercased haystack column.
func buildSearchTerms(inv *Invoice) string {
	parts := make([]string, 0, len(inv.Items)+3)
	parts = append(parts, inv.InvoiceNumber, inv.CustomerName)
	if inv.CustomerPhone != "" {
		parts = append(parts, inv.CustomerPhone)
	}
	for _, item := range inv.Items {
		parts = append(parts, item.ProductName)
		if item.SKU != "" {
			parts = append(parts, item.SKU)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// MarkCancelled flags the invoice after its order was cancelled
func (i *Invoice) MarkCancelled() error {
	if i.Status != InvoiceStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", i.Status))
	}
	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	return nil
}

// MarkRefunded flags the invoice as refunded
func (i *Invoice) MarkRefunded() error {
	if i.Status == InvoiceStatusRefunded {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already refunded")
	}
	i.Status = InvoiceStatusRefunded
	i.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the invoice has not been cancelled or refunded
func (i *Invoice) IsActive() bool {
	return i.Status == InvoiceStatusActive
}

// MatchesSearch reports whether the lowercased term appears in the
// invoice's search haystack.
func (i *Invoice) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(i.SearchTerms, strings.ToLower(term))
}
