package sales

import (
	"time"

	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/google/uuid"
)

// CheckoutLineRequest is one cart line submitted at checkout. Catalog
// lines carry a ProductID; ad-hoc lines leave it nil and name a price
// directly.
type CheckoutLineRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	Name      string     `json:"name"`
	Quantity  int64      `json:"quantity" binding:"required,gt=0"`
	UnitPrice *string    `json:"unit_price" binding:"omitempty,money"`
}

// CheckoutRequest finalizes a cart into an order
type CheckoutRequest struct {
	Lines          []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
	CustomerID     *uuid.UUID            `json:"customer_id"`
	PaymentMethod  string                `json:"payment_method" binding:"required,oneof=cash card transfer other"`
	IdempotencyKey string                `json:"idempotency_key"`
}

// CancelOrderRequest cancels a completed order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// OrderItemResponse is one finalized order line
type OrderItemResponse struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	SKU               string    `json:"sku,omitempty"`
	AdHoc             bool      `json:"ad_hoc"`
	Quantity          int64     `json:"quantity"`
	OriginalUnitPrice string    `json:"original_unit_price"`
	UnitPrice         string    `json:"unit_price"`
	Amount            string    `json:"amount"`
}

// OrderResponse is the full order representation
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	OrderNumber        string              `json:"order_number"`
	CustomerID         *uuid.UUID          `json:"customer_id,omitempty"`
	CustomerName       string              `json:"customer_name"`
	Items              []OrderItemResponse `json:"items"`
	Subtotal           string              `json:"subtotal"`
	Discount           string              `json:"discount"`
	DiscountPercentage string              `json:"discount_percentage"`
	Total              string              `json:"total"`
	PaymentMethod      string              `json:"payment_method"`
	Status             string              `json:"status"`
	PaymentStatus      string              `json:"payment_status"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason       string              `json:"cancel_reason,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
}

// OrderListItemResponse is the abbreviated row for order listings
type OrderListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	ItemCount     int       `json:"item_count"`
	Total         string    `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(order *sales.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			SKU:               item.SKU,
			AdHoc:             item.AdHoc,
			Quantity:          item.Quantity,
			OriginalUnitPrice: item.OriginalUnitPrice.StringFixed(2),
			UnitPrice:         item.UnitPrice.StringFixed(2),
			Amount:            item.Amount.StringFixed(2),
		})
	}

	return OrderResponse{
		ID:                 order.ID,
		OrderNumber:        order.OrderNumber,
		CustomerID:         order.CustomerID,
		CustomerName:       order.CustomerName,
		Items:              items,
		Subtotal:           order.Subtotal.StringFixed(2),
		Discount:           order.Discount.StringFixed(2),
		DiscountPercentage: order.DiscountPercentage.StringFixed(2),
		Total:              order.Total.StringFixed(2),
		PaymentMethod:      string(order.PaymentMethod),
		Status:             order.Status.String(),
		PaymentStatus:      string(order.PaymentStatus),
		CancelledAt:        order.CancelledAt,
		CancelReason:       order.CancelReason,
		CreatedAt:          order.CreatedAt,
	}
}

// ToOrderListItemResponse converts a domain order to its listing form
func ToOrderListItemResponse(order *sales.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		ItemCount:     order.ItemCount(),
		Total:         order.Total.StringFixed(2),
		PaymentMethod: string(order.PaymentMethod),
		Status:        order.Status.String(),
		CreatedAt:     order.CreatedAt,
	}
}
