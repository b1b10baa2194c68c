package sales

import (
	"fmt"
	"time"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted:
		return target == OrderStatusCancelled
	case OrderStatusCancelled:
		return false // Terminal state
	}
	return false
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethod represents how an order was paid
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// OrderItem is a finalized line on a persisted order
type OrderItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName       string          `gorm:"type:varchar(200);not null"`
	SKU               string          `gorm:"type:varchar(50)"`
	AdHoc             bool            `gorm:"not null;default:false"`
	Quantity          int64           `gorm:"not null"`
	OriginalUnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// LineDiscountPercentage returns the per-line discount percentage,
// zero when the original price is zero.
func (i *OrderItem) LineDiscountPercentage() decimal.Decimal {
	if i.OriginalUnitPrice.IsZero() {
		return decimal.Zero
	}
	return i.OriginalUnitPrice.Sub(i.UnitPrice).
		Div(i.OriginalUnitPrice).
		Mul(decimal.NewFromInt(100))
}

// Order is the persisted, finalized sales record produced at checkout.
// It is created once and mutated only by the completed->cancelled
// status transition; it is never deleted.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_tenant_number,priority:2"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName       string          `gorm:"type:varchar(200);not null"`
	Items              []OrderItem     `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	Total              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentMethod      PaymentMethod   `gorm:"type:varchar(20);not null"`
	Status             OrderStatus     `gorm:"type:varchar(20);not null;default:'completed'"`
	PaymentStatus      PaymentStatus   `gorm:"type:varchar(20);not null;default:'paid'"`
	CancelledAt        *time.Time
	CancelReason       string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// WalkInCustomerName is used when an order has no customer record
const WalkInCustomerName = "Walk-in"

// NewOrderFromCart finalizes a cart into an order. The totals are
// computed once here and copied verbatim downstream (invoices never
// re-derive them). A nil customerID is a walk-in sale. Orders are
// created completed and paid; there is no pending-payment flow at the
// till.
func NewOrderFromCart(tenantID uuid.UUID, orderNumber string, cart Cart, customerID *uuid.UUID, customerName string, paymentMethod PaymentMethod) (*Order, error) {
	if cart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method %q", paymentMethod))
	}
	if customerID == nil && customerName == "" {
		customerName = WalkInCustomerName
	}

	totals := cart.Totals()

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Subtotal:            totals.Subtotal,
		Discount:            totals.Discount,
		DiscountPercentage:  totals.DiscountPercentage,
		Total:               totals.AfterDiscount,
		PaymentMethod:       paymentMethod,
		Status:              OrderStatusCompleted,
		PaymentStatus:       PaymentStatusPaid,
		Items:               make([]OrderItem, 0, len(cart.Items)),
	}

	now := time.Now()
	for _, line := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			ID:                uuid.New(),
			OrderID:           order.ID,
			ProductID:         line.ProductID,
			ProductName:       line.ProductName,
			SKU:               line.SKU,
			AdHoc:             line.AdHoc,
			Quantity:          line.Quantity,
			OriginalUnitPrice: line.OriginalUnitPrice,
			UnitPrice:         line.CurrentUnitPrice,
			Amount:            line.LineAmount(),
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// Cancel cancels the order. Cancellation is the only mutation an order
// supports after creation.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.PaymentStatus = PaymentStatusRefunded
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// IsCancelled returns true if the order has been cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsWalkIn returns true if the order has no customer record
func (o *Order) IsWalkIn() bool {
	return o.CustomerID == nil
}

// ItemCount returns the number of lines on the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetTotalMoney returns the order total as Money
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}

// GetItemByProduct returns an item by product ID
func (o *Order) GetItemByProduct(productID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}
