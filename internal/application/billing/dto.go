package billing

import (
	"time"

	"github.com/potterypos/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// InvoiceItemResponse is one invoice line
type InvoiceItemResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	SKU                string    `json:"sku,omitempty"`
	Quantity           int64     `json:"quantity"`
	OriginalUnitPrice  string    `json:"original_unit_price"`
	UnitPrice          string    `json:"unit_price"`
	Amount             string    `json:"amount"`
	DiscountPercentage string    `json:"discount_percentage"`
}

// InvoiceResponse is the full invoice representation
type InvoiceResponse struct {
	ID                 uuid.UUID             `json:"id"`
	InvoiceNumber      string                `json:"invoice_number"`
	OrderID            uuid.UUID             `json:"order_id"`
	CustomerID         *uuid.UUID            `json:"customer_id,omitempty"`
	CustomerName       string                `json:"customer_name"`
	CustomerPhone      string                `json:"customer_phone,omitempty"`
	Items              []InvoiceItemResponse `json:"items"`
	Subtotal           string                `json:"subtotal"`
	Discount           string                `json:"discount"`
	DiscountPercentage string                `json:"discount_percentage"`
	Total              string                `json:"total"`
	PaymentMethod      string                `json:"payment_method"`
	Status             string                `json:"status"`
	IssuedAt           time.Time             `json:"issued_at"`
}

// InvoiceListItemResponse is the abbreviated row for invoice listings
type InvoiceListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerName  string    `json:"customer_name"`
	Total         string    `json:"total"`
	Status        string    `json:"status"`
	IssuedAt      time.Time `json:"issued_at"`
}

// ToInvoiceResponse converts a domain invoice to its response form
func ToInvoiceResponse(invoice *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, InvoiceItemResponse{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			SKU:                item.SKU,
			Quantity:           item.Quantity,
			OriginalUnitPrice:  item.OriginalUnitPrice.StringFixed(2),
			UnitPrice:          item.UnitPrice.StringFixed(2),
			Amount:             item.Amount.StringFixed(2),
			DiscountPercentage: item.DiscountPercentage.StringFixed(2),
		})
	}

	return InvoiceResponse{
		ID:                 invoice.ID,
		InvoiceNumber:      invoice.InvoiceNumber,
		OrderID:            invoice.OrderID,
		CustomerID:         invoice.CustomerID,
		CustomerName:       invoice.CustomerName,
		CustomerPhone:      invoice.CustomerPhone,
		Items:              items,
		Subtotal:           invoice.Subtotal.StringFixed(2),
		Discount:           invoice.Discount.StringFixed(2),
		DiscountPercentage: invoice.DiscountPercentage.StringFixed(2),
		Total:              invoice.Total.StringFixed(2),
		PaymentMethod:      invoice.PaymentMethod,
		Status:             string(invoice.Status),
		IssuedAt:           invoice.IssuedAt,
	}
}

// ToInvoiceListItemResponse converts a domain invoice to its listing form
func ToInvoiceListItemResponse(invoice *billing.Invoice) InvoiceListItemResponse {
	return InvoiceListItemResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerName:  invoice.CustomerName,
		Total:         invoice.Total.StringFixed(2),
		Status:        string(invoice.Status),
		IssuedAt:      invoice.IssuedAt,
	}
}
