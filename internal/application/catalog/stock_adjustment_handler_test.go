package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/potterypos/backend/internal/domain/catalog"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/potterypos/backend/internal/infrastructure/logger"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, tenantID uuid.UUID, category string, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, tenantID, category, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID, threshold int64) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, threshold)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

var _ catalog.ProductRepository = (*MockProductRepository)(nil)

func stockTestProduct(t *testing.T, tenantID uuid.UUID, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, "MUG-001", "Glazed Mug", "mugs", valueobject.NewMoneyUSDFromFloat(25), stock)
	require.NoError(t, err)
	return product
}

func orderCreated(tenantID uuid.UUID, lines ...sales.OrderLineSnapshot) *sales.OrderCreatedEvent {
	return &sales.OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeOrderCreated, sales.AggregateTypeOrder, uuid.New(), tenantID),
		OrderNumber:     "SO-2026-00001",
		Lines:           lines,
	}
}

func orderCancelled(tenantID uuid.UUID, lines ...sales.OrderLineSnapshot) *sales.OrderCancelledEvent {
	return &sales.OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeOrderCancelled, sales.AggregateTypeOrder, uuid.New(), tenantID),
		OrderNumber:     "SO-2026-00001",
		Lines:           lines,
	}
}

func TestStockAdjustment_OrderCreatedDecrements(t *testing.T) {
	tenantID := uuid.New()
	product := stockTestProduct(t, tenantID, 10)

	repo := new(MockProductRepository)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	handler := NewStockAdjustmentHandler(repo, logger.NewNop())

	event := orderCreated(tenantID, sales.OrderLineSnapshot{ProductID: product.ID, Quantity: 3})
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Equal(t, int64(7), product.Stock)
	repo.AssertExpectations(t)
}

func TestStockAdjustment_OrderCancelledRestores(t *testing.T) {
	tenantID := uuid.New()
	product := stockTestProduct(t, tenantID, 7)

	repo := new(MockProductRepository)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	handler := NewStockAdjustmentHandler(repo, logger.NewNop())

	event := orderCancelled(tenantID, sales.OrderLineSnapshot{ProductID: product.ID, Quantity: 3})
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Equal(t, int64(10), product.Stock)
}

func TestStockAdjustment_FloorsAtZero(t *testing.T) {
	tenantID := uuid.New()
	product := stockTestProduct(t, tenantID, 2)

	repo := new(MockProductRepository)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	handler := NewStockAdjustmentHandler(repo, logger.NewNop())

	event := orderCreated(tenantID, sales.OrderLineSnapshot{ProductID: product.ID, Quantity: 5})
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Equal(t, int64(0), product.Stock)
}

func TestStockAdjustment_SkipsAdHocLines(t *testing.T) {
	tenantID := uuid.New()

	repo := new(MockProductRepository)
	handler := NewStockAdjustmentHandler(repo, logger.NewNop())

	event := orderCreated(tenantID, sales.OrderLineSnapshot{ProductID: uuid.Nil, AdHoc: true, Quantity: 2})
	require.NoError(t, handler.Handle(context.Background(), event))

	repo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStockAdjustment_RejectsUnexpectedEventType(t *testing.T) {
	repo := new(MockProductRepository)
	handler := NewStockAdjustmentHandler(repo, logger.NewNop())

	base := shared.NewBaseDomainEvent("expense.created", "Expense", uuid.New(), uuid.New())
	err := handler.Handle(context.Background(), &base)
	assert.Error(t, err)
}

func TestStockAdjustment_MissingProductDoesNotBlockRest(t *testing.T) {
	tenantID := uuid.New()
	missing := uuid.New()
	product := stockTestProduct(t, tenantID, 10)

	repo := new(MockProductRepository)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, missing).Return(nil, shared.ErrNotFound)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	handler := NewStockAdjustmentHandler(repo, logger.NewNop())

	event := orderCreated(tenantID,
		sales.OrderLineSnapshot{ProductID: missing, Quantity: 1},
		sales.OrderLineSnapshot{ProductID: product.ID, Quantity: 2},
	)
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Equal(t, int64(8), product.Stock)
	repo.AssertExpectations(t)
}
