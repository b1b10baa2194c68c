package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/potterypos/backend/internal/domain/billing"
	"github.com/potterypos/backend/internal/domain/partner"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/infrastructure/logger"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrderID(ctx context.Context, tenantID uuid.UUID, orderID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[billing.Invoice], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[billing.Invoice]), args.Error(1)
}

func (m *MockInvoiceRepository) Search(ctx context.Context, tenantID uuid.UUID, term string, filter shared.Filter) (*shared.Paginated[billing.Invoice], error) {
	args := m.Called(ctx, tenantID, term, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[billing.Invoice]), args.Error(1)
}

func (m *MockInvoiceRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[partner.Customer], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[partner.Customer]), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

var _ billing.InvoiceRepository = (*MockInvoiceRepository)(nil)
var _ partner.CustomerRepository = (*MockCustomerRepository)(nil)

func materializerEvent(tenantID uuid.UUID, customerID *uuid.UUID) *sales.OrderCreatedEvent {
	return &sales.OrderCreatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(sales.EventTypeOrderCreated, sales.AggregateTypeOrder, uuid.New(), tenantID),
		OrderNumber:        "SO-2026-00017",
		CustomerID:         customerID,
		CustomerName:       "Mira Patel",
		Subtotal:           decimal.RequireFromString("100.00"),
		Discount:           decimal.RequireFromString("20.00"),
		DiscountPercentage: decimal.RequireFromString("20.00"),
		Total:              decimal.RequireFromString("80.00"),
		PaymentMethod:      sales.PaymentMethodCard,
		Lines: []sales.OrderLineSnapshot{
			{
				ProductID:         uuid.New(),
				ProductName:       "Glazed Mug",
				SKU:               "MUG-001",
				Quantity:          4,
				OriginalUnitPrice: decimal.RequireFromString("25.00"),
				UnitPrice:         decimal.RequireFromString("20.00"),
				Amount:            decimal.RequireFromString("80.00"),
			},
		},
	}
}

func TestInvoiceMaterializer_CopiesOrderTotals(t *testing.T) {
	tenantID := uuid.New()

	invoiceRepo := new(MockInvoiceRepository)
	customerRepo := new(MockCustomerRepository)

	var saved *billing.Invoice
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*billing.Invoice)
		}).
		Return(nil)

	handler := NewInvoiceMaterializer(invoiceRepo, customerRepo, logger.NewNop())

	event := materializerEvent(tenantID, nil)
	require.NoError(t, handler.Handle(context.Background(), event))

	require.NotNil(t, saved)
	assert.Equal(t, "SO-2026-00017", saved.InvoiceNumber)
	assert.Equal(t, event.AggregateID(), saved.OrderID)
	assert.Equal(t, "Mira Patel", saved.CustomerName)
	assert.True(t, saved.Subtotal.Equal(event.Subtotal))
	assert.True(t, saved.Discount.Equal(event.Discount))
	assert.True(t, saved.Total.Equal(event.Total))
	assert.Equal(t, billing.InvoiceStatusActive, saved.Status)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "MUG-001", saved.Items[0].SKU)
	assert.True(t, saved.Items[0].Amount.Equal(decimal.RequireFromString("80.00")))
}

func TestInvoiceMaterializer_LooksUpCustomerPhone(t *testing.T) {
	tenantID := uuid.New()
	customer, err := partner.NewCustomer(tenantID, "Mira Patel", "+15550123")
	require.NoError(t, err)

	invoiceRepo := new(MockInvoiceRepository)
	customerRepo := new(MockCustomerRepository)
	customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)

	var saved *billing.Invoice
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*billing.Invoice)
		}).
		Return(nil)

	handler := NewInvoiceMaterializer(invoiceRepo, customerRepo, logger.NewNop())
	require.NoError(t, handler.Handle(context.Background(), materializerEvent(tenantID, &customer.ID)))

	require.NotNil(t, saved)
	assert.Equal(t, "+15550123", saved.CustomerPhone)
}

func TestInvoiceMaterializer_CustomerLookupIsBestEffort(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()

	invoiceRepo := new(MockInvoiceRepository)
	customerRepo := new(MockCustomerRepository)
	customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customerID).Return(nil, shared.ErrNotFound)

	var saved *billing.Invoice
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*billing.Invoice)
		}).
		Return(nil)

	handler := NewInvoiceMaterializer(invoiceRepo, customerRepo, logger.NewNop())
	require.NoError(t, handler.Handle(context.Background(), materializerEvent(tenantID, &customerID)))

	require.NotNil(t, saved)
	assert.Empty(t, saved.CustomerPhone)
}

func TestInvoiceCancelledHandler_MarksInvoiceCancelled(t *testing.T) {
	tenantID := uuid.New()
	created := materializerEvent(tenantID, nil)

	src := billing.InvoiceSource{
		OrderID:       created.AggregateID(),
		OrderNumber:   created.OrderNumber,
		CustomerName:  created.CustomerName,
		Subtotal:      created.Subtotal,
		Discount:      created.Discount,
		Total:         created.Total,
		PaymentMethod: string(created.PaymentMethod),
		Lines: []billing.InvoiceSourceLine{
			{ProductName: "Glazed Mug", SKU: "MUG-001", Quantity: 4, UnitPrice: decimal.NewFromInt(20), Amount: decimal.NewFromInt(80)},
		},
	}
	invoice, err := billing.NewInvoiceFromOrder(tenantID, src)
	require.NoError(t, err)

	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("FindByOrderID", mock.Anything, tenantID, created.AggregateID()).Return(invoice, nil)
	invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

	handler := NewInvoiceCancelledHandler(invoiceRepo, logger.NewNop())

	event := &sales.OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeOrderCancelled, sales.AggregateTypeOrder, created.AggregateID(), tenantID),
		OrderNumber:     created.OrderNumber,
	}
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Equal(t, billing.InvoiceStatusCancelled, invoice.Status)
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceCancelledHandler_MissingInvoiceIsSkipped(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()

	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("FindByOrderID", mock.Anything, tenantID, orderID).Return(nil, shared.ErrNotFound)

	handler := NewInvoiceCancelledHandler(invoiceRepo, logger.NewNop())

	event := &sales.OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeOrderCancelled, sales.AggregateTypeOrder, orderID, tenantID),
		OrderNumber:     "SO-2026-00099",
	}
	require.NoError(t, handler.Handle(context.Background(), event))

	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvoiceCancelledHandler_AlreadyCancelledIsNoOp(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()

	src := billing.InvoiceSource{
		OrderID:       orderID,
		OrderNumber:   "SO-2026-00100",
		CustomerName:  "Walk-in",
		Total:         decimal.NewFromInt(10),
		PaymentMethod: "cash",
		Lines: []billing.InvoiceSourceLine{
			{ProductName: "Seconds Bowl", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)},
		},
	}
	invoice, err := billing.NewInvoiceFromOrder(tenantID, src)
	require.NoError(t, err)
	require.NoError(t, invoice.MarkCancelled())

	invoiceRepo := new(MockInvoiceRepository)
	invoiceRepo.On("FindByOrderID", mock.Anything, tenantID, orderID).Return(invoice, nil)

	handler := NewInvoiceCancelledHandler(invoiceRepo, logger.NewNop())

	event := &sales.OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeOrderCancelled, sales.AggregateTypeOrder, orderID, tenantID),
		OrderNumber:     "SO-2026-00100",
	}
	require.NoError(t, handler.Handle(context.Background(), event))

	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
