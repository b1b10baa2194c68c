package sales

import (
	"context"
	"time"

	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order queries and cancellation
type OrderService struct {
	orderRepo      sales.OrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo sales.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves an order by order number
func (s *OrderService) GetByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]OrderListItemResponse, int64, error) {
	page, err := s.orderRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]OrderListItemResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToOrderListItemResponse(&page.Items[i]))
	}
	return items, page.Total, nil
}

// ListByCustomer retrieves a customer's orders
func (s *OrderService) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]OrderListItemResponse, int64, error) {
	page, err := s.orderRepo.FindByCustomer(ctx, tenantID, customerID, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]OrderListItemResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToOrderListItemResponse(&page.Items[i]))
	}
	return items, page.Total, nil
}

// ListByDateRange retrieves all orders created within the given window
func (s *OrderService) ListByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByDateRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToOrderResponse(order))
	}
	return responses, nil
}

// Cancel cancels a completed order. Calling it again on an already
// cancelled order returns the order unchanged so stock is never
// restored twice.
func (s *OrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if order.IsCancelled() {
		s.logger.Info("cancel requested for already cancelled order",
			zap.String("order_number", order.OrderNumber),
		)
		response := ToOrderResponse(order)
		return &response, nil
	}

	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range order.GetDomainEvents() {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("failed to publish order cancelled event",
					zap.String("order_number", order.OrderNumber),
					zap.Error(err),
				)
			}
		}
		order.ClearDomainEvents()
	}

	s.logger.Info("order cancelled",
		zap.String("order_number", order.OrderNumber),
		zap.String("reason", req.Reason),
	)

	response := ToOrderResponse(order)
	return &response, nil
}
