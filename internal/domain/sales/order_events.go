package sales

import (
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeOrder = "Order"

	EventTypeOrderCreated   = "order.created"
	EventTypeOrderCancelled = "order.cancelled"
)

// OrderLineSnapshot carries the per-line data downstream handlers need
// without loading the aggregate again.
type OrderLineSnapshot struct {
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	SKU               string          `json:"sku"`
	AdHoc             bool            `json:"ad_hoc"`
	Quantity          int64           `json:"quantity"`
	OriginalUnitPrice decimal.Decimal `json:"original_unit_price"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Amount            decimal.Decimal `json:"amount"`
}

func snapshotItems(items []OrderItem) []OrderLineSnapshot {
	lines := make([]OrderLineSnapshot, 0, len(items))
	for _, item := range items {
		lines = append(lines, OrderLineSnapshot{
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			SKU:               item.SKU,
			AdHoc:             item.AdHoc,
			Quantity:          item.Quantity,
			OriginalUnitPrice: item.OriginalUnitPrice,
			UnitPrice:         item.UnitPrice,
			Amount:            item.Amount,
		})
	}
	return lines
}

// OrderCreatedEvent is published when a cart is finalized into an order
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber        string              `json:"order_number"`
	CustomerID         *uuid.UUID          `json:"customer_id,omitempty"`
	CustomerName       string              `json:"customer_name"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	Discount           decimal.Decimal     `json:"discount"`
	DiscountPercentage decimal.Decimal     `json:"discount_percentage"`
	Total              decimal.Decimal     `json:"total"`
	PaymentMethod      PaymentMethod       `json:"payment_method"`
	Lines              []OrderLineSnapshot `json:"lines"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID, order.TenantID),
		OrderNumber:        order.OrderNumber,
		CustomerID:         order.CustomerID,
		CustomerName:       order.CustomerName,
		Subtotal:           order.Subtotal,
		Discount:           order.Discount,
		DiscountPercentage: order.DiscountPercentage,
		Total:              order.Total,
		PaymentMethod:      order.PaymentMethod,
		Lines:              snapshotItems(order.Items),
	}
}

// OrderCancelledEvent is published when an order is cancelled. It
// carries line snapshots so stock can be restored without reloading
// the order.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string              `json:"order_number"`
	CustomerID   *uuid.UUID          `json:"customer_id,omitempty"`
	Total        decimal.Decimal     `json:"total"`
	CancelReason string              `json:"cancel_reason"`
	Lines        []OrderLineSnapshot `json:"lines"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Total:           order.Total,
		CancelReason:    order.CancelReason,
		Lines:           snapshotItems(order.Items),
	}
}
