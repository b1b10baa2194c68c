package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/potterypos/backend/internal/domain/catalog"
	"github.com/potterypos/backend/internal/domain/partner"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/potterypos/backend/internal/infrastructure/logger"
)

// MockOrderRepository is a mock implementation of sales.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*sales.Order, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.Order], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[sales.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.Order], error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[sales.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*sales.Order, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

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

var _ sales.OrderRepository = (*MockOrderRepository)(nil)
var _ catalog.ProductRepository = (*MockProductRepository)(nil)
var _ partner.CustomerRepository = (*MockCustomerRepository)(nil)

// MockIdempotencyStore is a mock implementation of IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Get(ctx context.Context, tenantID uuid.UUID, key string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, tenantID, key)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Put(ctx context.Context, tenantID uuid.UUID, key string, orderID uuid.UUID, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, key, orderID, ttl)
	return args.Error(0)
}

// capturePublisher records published events
type capturePublisher struct {
	events []shared.DomainEvent
}

func (p *capturePublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func newTestProduct(t *testing.T, tenantID uuid.UUID, sku, name string, price float64, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, sku, name, "mugs", valueobject.NewMoneyUSDFromFloat(price), stock)
	require.NoError(t, err)
	return product
}

func TestCheckout_CatalogLines(t *testing.T) {
	tenantID := uuid.New()
	product := newTestProduct(t, tenantID, "MUG-001", "Glazed Mug", 25, 10)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	publisher := &capturePublisher{}

	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	orderRepo.On("GenerateOrderNumber", mock.Anything, tenantID).Return("SO-2026-00001", nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Order")).Return(nil)

	service := NewCheckoutService(orderRepo, productRepo, customerRepo, nil, 0, logger.NewNop())
	service.SetEventPublisher(publisher)

	resp, err := service.Checkout(context.Background(), tenantID, CheckoutRequest{
		Lines: []CheckoutLineRequest{
			{ProductID: &product.ID, Quantity: 2},
		},
		PaymentMethod: "cash",
	})

	require.NoError(t, err)
	assert.Equal(t, "SO-2026-00001", resp.OrderNumber)
	assert.Equal(t, "50.00", resp.Total)
	assert.Equal(t, sales.WalkInCustomerName, resp.CustomerName)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, sales.EventTypeOrderCreated, publisher.events[0].EventType())

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCheckout_PriceOverrideDiscount(t *testing.T) {
	tenantID := uuid.New()
	product := newTestProduct(t, tenantID, "VASE-001", "Tall Vase", 100, 5)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)

	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	orderRepo.On("GenerateOrderNumber", mock.Anything, tenantID).Return("SO-2026-00002", nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Order")).Return(nil)

	service := NewCheckoutService(orderRepo, productRepo, customerRepo, nil, 0, logger.NewNop())

	override := "80"
	resp, err := service.Checkout(context.Background(), tenantID, CheckoutRequest{
		Lines: []CheckoutLineRequest{
			{ProductID: &product.ID, Quantity: 1, UnitPrice: &override},
		},
		PaymentMethod: "card",
	})

	require.NoError(t, err)
	assert.Equal(t, "100.00", resp.Subtotal)
	assert.Equal(t, "80.00", resp.Total)
	assert.Equal(t, "20.00", resp.Discount)
	assert.Equal(t, "20.00", resp.DiscountPercentage)
}

func TestCheckout_AdHocLine(t *testing.T) {
	tenantID := uuid.New()

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)

	orderRepo.On("GenerateOrderNumber", mock.Anything, tenantID).Return("SO-2026-00003", nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Order")).Return(nil)

	service := NewCheckoutService(orderRepo, productRepo, customerRepo, nil, 0, logger.NewNop())

	price := "35.50"
	resp, err := service.Checkout(context.Background(), tenantID, CheckoutRequest{
		Lines: []CheckoutLineRequest{
			{Name: "Custom commission", Quantity: 1, UnitPrice: &price},
		},
		PaymentMethod: "transfer",
	})

	require.NoError(t, err)
	assert.Equal(t, "35.50", resp.Total)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].AdHoc)
}

func TestCheckout_AdHocLineRequiresPrice(t *testing.T) {
	tenantID := uuid.New()

	service := NewCheckoutService(new(MockOrderRepository), new(MockProductRepository), new(MockCustomerRepository), nil, 0, logger.NewNop())

	_, err := service.Checkout(context.Background(), tenantID, CheckoutRequest{
		Lines: []CheckoutLineRequest{
			{Name: "Mystery item", Quantity: 1},
		},
		PaymentMethod: "cash",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
}

func TestCheckout_ArchivedProductRejected(t *testing.T) {
	tenantID := uuid.New()
	product := newTestProduct(t, tenantID, "OLD-001", "Discontinued Bowl", 15, 3)
	require.NoError(t, product.Archive())

	productRepo := new(MockProductRepository)
	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)

	service := NewCheckoutService(new(MockOrderRepository), productRepo, new(MockCustomerRepository), nil, 0, logger.NewNop())

	_, err := service.Checkout(context.Background(), tenantID, CheckoutRequest{
		Lines: []CheckoutLineRequest{
			{ProductID: &product.ID, Quantity: 1},
		},
		PaymentMethod: "cash",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestCheckout_IdempotentReplay(t *testing.T) {
	tenantID := uuid.New()
	product := newTestProduct(t, tenantID, "MUG-002", "Small Mug", 18, 8)

	cart := sales.NewCart()
	line, err := sales.NewCatalogLine(product.ID, product.Name, product.SKU, product.Price, 1)
	require.NoError(t, err)
	cart = cart.Add(line)
	existing, err := sales.NewOrderFromCart(tenantID, "SO-2026-00009", cart, nil, "", sales.PaymentMethodCash)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	idempotency := new(MockIdempotencyStore)

	idempotency.On("Get", mock.Anything, tenantID, "retry-key").Return(existing.ID, true, nil)
	orderRepo.On("FindByIDForTenant", mock.Anything, tenantID, existing.ID).Return(existing, nil)

	service := NewCheckoutService(orderRepo, new(MockProductRepository), new(MockCustomerRepository), idempotency, 0, logger.NewNop())

	resp, err := service.Checkout(context.Background(), tenantID, CheckoutRequest{
		Lines: []CheckoutLineRequest{
			{ProductID: &product.ID, Quantity: 1},
		},
		PaymentMethod:  "cash",
		IdempotencyKey: "retry-key",
	})

	require.NoError(t, err)
	assert.Equal(t, "SO-2026-00009", resp.OrderNumber)

	// The replay never touches the catalog or creates a new order
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "GenerateOrderNumber", mock.Anything, mock.Anything)
}

func TestCheckout_RecordsIdempotencyKey(t *testing.T) {
	tenantID := uuid.New()
	product := newTestProduct(t, tenantID, "MUG-003", "Large Mug", 30, 4)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	idempotency := new(MockIdempotencyStore)

	idempotency.On("Get", mock.Anything, tenantID, "first-try").Return(uuid.Nil, false, nil)
	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	orderRepo.On("GenerateOrderNumber", mock.Anything, tenantID).Return("SO-2026-00010", nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Order")).Return(nil)
	idempotency.On("Put", mock.Anything, tenantID, "first-try", mock.AnythingOfType("uuid.UUID"), 2*time.Hour).Return(nil)

	service := NewCheckoutService(orderRepo, productRepo, new(MockCustomerRepository), idempotency, 2*time.Hour, logger.NewNop())

	_, err := service.Checkout(context.Background(), tenantID, CheckoutRequest{
		Lines: []CheckoutLineRequest{
			{ProductID: &product.ID, Quantity: 1},
		},
		PaymentMethod:  "cash",
		IdempotencyKey: "first-try",
	})

	require.NoError(t, err)
	idempotency.AssertExpectations(t)
}

func TestCheckout_FallsBackToDefaultIdempotencyTTL(t *testing.T) {
	tenantID := uuid.New()
	product := newTestProduct(t, tenantID, "MUG-004", "Travel Mug", 32, 5)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	idempotency := new(MockIdempotencyStore)

	idempotency.On("Get", mock.Anything, tenantID, "fallback-key").Return(uuid.Nil, false, nil)
	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	orderRepo.On("GenerateOrderNumber", mock.Anything, tenantID).Return("SO-2026-00011", nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Order")).Return(nil)
	idempotency.On("Put", mock.Anything, tenantID, "fallback-key", mock.AnythingOfType("uuid.UUID"), defaultIdempotencyTTL).Return(nil)

	service := NewCheckoutService(orderRepo, productRepo, new(MockCustomerRepository), idempotency, 0, logger.NewNop())

	_, err := service.Checkout(context.Background(), tenantID, CheckoutRequest{
		Lines: []CheckoutLineRequest{
			{ProductID: &product.ID, Quantity: 1},
		},
		PaymentMethod:  "cash",
		IdempotencyKey: "fallback-key",
	})

	require.NoError(t, err)
	idempotency.AssertExpectations(t)
}

func TestCheckout_NamedCustomer(t *testing.T) {
	tenantID := uuid.New()
	product := newTestProduct(t, tenantID, "BWL-001", "Serving Bowl", 45, 6)
	customer, err := partner.NewCustomer(tenantID, "Maria Santos", "555-0101")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)

	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
	orderRepo.On("GenerateOrderNumber", mock.Anything, tenantID).Return("SO-2026-00011", nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Order")).Return(nil)

	service := NewCheckoutService(orderRepo, productRepo, customerRepo, nil, 0, logger.NewNop())

	resp, err := service.Checkout(context.Background(), tenantID, CheckoutRequest{
		Lines: []CheckoutLineRequest{
			{ProductID: &product.ID, Quantity: 1},
		},
		CustomerID:    &customer.ID,
		PaymentMethod: "card",
	})

	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", resp.CustomerName)
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, customer.ID, *resp.CustomerID)
}
