package sales

import (
	"context"
	"time"

	"github.com/potterypos/backend/internal/domain/catalog"
	"github.com/potterypos/backend/internal/domain/partner"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IdempotencyStore remembers which order a checkout key produced so a
// double-submitted checkout returns the first order instead of
// creating a second one.
type IdempotencyStore interface {
	Get(ctx context.Context, tenantID uuid.UUID, key string) (uuid.UUID, bool, error)
	Put(ctx context.Context, tenantID uuid.UUID, key string, orderID uuid.UUID, ttl time.Duration) error
}

// defaultIdempotencyTTL bounds how long a checkout key guards against
// resubmission when no TTL is configured. Double clicks happen within
// seconds; a day is plenty.
const defaultIdempotencyTTL = 24 * time.Hour

// CheckoutService turns submitted carts into finalized orders
type CheckoutService struct {
	orderRepo      sales.OrderRepository
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	idempotency    IdempotencyStore
	idempotencyTTL time.Duration
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	idempotency IdempotencyStore,
	idempotencyTTL time.Duration,
	logger *zap.Logger,
) *CheckoutService {
	if idempotencyTTL <= 0 {
		idempotencyTTL = defaultIdempotencyTTL
	}
	return &CheckoutService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		idempotency:    idempotency,
		idempotencyTTL: idempotencyTTL,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Checkout builds a cart from the request, finalizes it into an order
// and publishes the resulting events. When the request carries an
// idempotency key already seen for this tenant, the original order is
// returned and nothing new is created.
func (s *CheckoutService) Checkout(ctx context.Context, tenantID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	if req.IdempotencyKey != "" && s.idempotency != nil {
		orderID, found, err := s.idempotency.Get(ctx, tenantID, req.IdempotencyKey)
		if err != nil {
			s.logger.Warn("idempotency lookup failed, proceeding with checkout",
				zap.String("key", req.IdempotencyKey),
				zap.Error(err),
			)
		} else if found {
			existing, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
			if err != nil {
				return nil, err
			}
			s.logger.Info("checkout replayed from idempotency key",
				zap.String("order_number", existing.OrderNumber),
			)
			response := ToOrderResponse(existing)
			return &response, nil
		}
	}

	cart, err := s.buildCart(ctx, tenantID, req.Lines)
	if err != nil {
		return nil, err
	}

	customerID, customerName, err := s.resolveCustomer(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	order, err := sales.NewOrderFromCart(tenantID, orderNumber, cart, customerID, customerName, sales.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	if req.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Put(ctx, tenantID, req.IdempotencyKey, order.ID, s.idempotencyTTL); err != nil {
			s.logger.Warn("failed to record idempotency key",
				zap.String("key", req.IdempotencyKey),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.Total.String()),
		zap.Int("items", order.ItemCount()),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// buildCart resolves each request line against the catalog and applies
// price overrides through the cart so original prices are preserved
// for discount math.
func (s *CheckoutService) buildCart(ctx context.Context, tenantID uuid.UUID, lines []CheckoutLineRequest) (sales.Cart, error) {
	cart := sales.NewCart()

	for _, reqLine := range lines {
		if reqLine.ProductID == nil {
			if reqLine.UnitPrice == nil {
				return cart, shared.NewDomainError("INVALID_PRICE", "Ad-hoc lines require a unit price")
			}
			price, err := decimal.NewFromString(*reqLine.UnitPrice)
			if err != nil {
				return cart, shared.NewDomainError("INVALID_PRICE", "Unit price is not a valid amount")
			}
			line, err := sales.NewAdHocLine(reqLine.Name, price, reqLine.Quantity)
			if err != nil {
				return cart, err
			}
			cart = cart.Add(line)
			continue
		}

		product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, *reqLine.ProductID)
		if err != nil {
			return cart, err
		}
		if !product.IsActive() {
			return cart, shared.NewDomainError("INVALID_STATE", "Product is not available for sale")
		}

		line, err := sales.NewCatalogLine(product.ID, product.Name, product.SKU, product.Price, reqLine.Quantity)
		if err != nil {
			return cart, err
		}
		cart = cart.Add(line)

		if reqLine.UnitPrice != nil {
			override, err := decimal.NewFromString(*reqLine.UnitPrice)
			if err != nil {
				return cart, shared.NewDomainError("INVALID_PRICE", "Unit price is not a valid amount")
			}
			cart = cart.SetPrice(product.ID, override)
		}
	}

	return cart, nil
}

func (s *CheckoutService) resolveCustomer(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID) (*uuid.UUID, string, error) {
	if customerID == nil {
		return nil, "", nil
	}
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, *customerID)
	if err != nil {
		return nil, "", err
	}
	return customerID, customer.Name, nil
}

// publishEvents hands the order's events to downstream handlers. A
// failed handler must never unwind a sale that already happened, so
// failures are logged and swallowed.
func (s *CheckoutService) publishEvents(ctx context.Context, order *sales.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.String("order_number", order.OrderNumber),
				zap.Error(err),
			)
		}
	}
	order.ClearDomainEvents()
}
