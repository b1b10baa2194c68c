package sales

import (
	"testing"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestCart(t *testing.T) Cart {
	t.Helper()
	mug := mustCatalogLine(t, "Mug", "25.00", 4)
	bowl := mustCatalogLine(t, "Bowl", "50.00", 2)
	cart := NewCart().Add(mug).Add(bowl)
	return cart.SetPrice(bowl.ProductID, decimal.RequireFromString("40.00"))
}

func TestNewOrderFromCart(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()

	order, err := NewOrderFromCart(tenantID, "SO-2026-00001", buildTestCart(t), &customerID, "Jordan Reyes", PaymentMethodCash)
	require.NoError(t, err)

	assert.Equal(t, tenantID, order.TenantID)
	assert.Equal(t, "SO-2026-00001", order.OrderNumber)
	assert.Equal(t, OrderStatusCompleted, order.Status)
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, order.Discount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("180.00")))
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
	}

	events := order.GetDomainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypeOrderCreated, created.EventType())
	assert.Len(t, created.Lines, 2)
}

func TestNewOrderFromCartEmptyCart(t *testing.T) {
	_, err := NewOrderFromCart(uuid.New(), "SO-2026-00001", NewCart(), nil, "", PaymentMethodCash)

	require.Error(t, err)
	assert.Equal(t, shared.ErrEmptyCart, err)
}

func TestNewOrderFromCartWalkIn(t *testing.T) {
	order, err := NewOrderFromCart(uuid.New(), "SO-2026-00002", buildTestCart(t), nil, "", PaymentMethodCard)
	require.NoError(t, err)

	assert.True(t, order.IsWalkIn())
	assert.Equal(t, WalkInCustomerName, order.CustomerName)
}

func TestNewOrderFromCartInvalidPaymentMethod(t *testing.T) {
	_, err := NewOrderFromCart(uuid.New(), "SO-2026-00003", buildTestCart(t), nil, "", PaymentMethod("barter"))

	assert.Error(t, err)
}

func TestOrderCancel(t *testing.T) {
	order, err := NewOrderFromCart(uuid.New(), "SO-2026-00004", buildTestCart(t), nil, "", PaymentMethodCash)
	require.NoError(t, err)
	order.ClearDomainEvents()

	err = order.Cancel("customer returned items")
	require.NoError(t, err)

	assert.Equal(t, OrderStatusCancelled, order.Status)
	assert.Equal(t, PaymentStatusRefunded, order.PaymentStatus)
	require.NotNil(t, order.CancelledAt)
	assert.Equal(t, "customer returned items", order.CancelReason)

	events := order.GetDomainEvents()
	require.Len(t, events, 1)
	cancelled, ok := events[0].(*OrderCancelledEvent)
	require.True(t, ok)
	assert.Len(t, cancelled.Lines, 2)
}

func TestOrderCancelTwiceFails(t *testing.T) {
	order, err := NewOrderFromCart(uuid.New(), "SO-2026-00005", buildTestCart(t), nil, "", PaymentMethodCash)
	require.NoError(t, err)

	require.NoError(t, order.Cancel("first"))
	err = order.Cancel("second")

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestOrderCancelRequiresReason(t *testing.T) {
	order, err := NewOrderFromCart(uuid.New(), "SO-2026-00006", buildTestCart(t), nil, "", PaymentMethodCash)
	require.NoError(t, err)

	assert.Error(t, order.Cancel(""))
	assert.Equal(t, OrderStatusCompleted, order.Status)
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusCompleted.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusCompleted))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusPending))
}

func TestOrderItemLineDiscountPercentage(t *testing.T) {
	item := OrderItem{
		OriginalUnitPrice: decimal.RequireFromString("50.00"),
		UnitPrice:         decimal.RequireFromString("40.00"),
	}

	assert.True(t, item.LineDiscountPercentage().Equal(decimal.RequireFromString("20")))

	free := OrderItem{OriginalUnitPrice: decimal.Zero, UnitPrice: decimal.Zero}
	assert.True(t, free.LineDiscountPercentage().IsZero())
}
