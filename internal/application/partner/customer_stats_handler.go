package partner

import (
	"context"
	"fmt"

	"github.com/potterypos/backend/internal/domain/partner"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CustomerStatsHandler bumps a customer's lifetime purchase counters
// when one of their orders is created. Walk-in orders carry no
// customer and are ignored. Cancellations do not decrement the
// counters; they record that the purchase happened, not its current
// standing.
type CustomerStatsHandler struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerStatsHandler creates a new CustomerStatsHandler
func NewCustomerStatsHandler(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerStatsHandler {
	return &CustomerStatsHandler{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CustomerStatsHandler) EventTypes() []string {
	return []string{sales.EventTypeOrderCreated}
}

// Handle records the purchase against the order's customer
func (h *CustomerStatsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*sales.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if createdEvent.CustomerID == nil {
		return nil
	}

	customer, err := h.customerRepo.FindByIDForTenant(ctx, event.TenantID(), *createdEvent.CustomerID)
	if err != nil {
		h.logger.Warn("customer stats skipped, customer not found",
			zap.String("order_number", createdEvent.OrderNumber),
			zap.String("customer_id", createdEvent.CustomerID.String()),
			zap.Error(err),
		)
		return nil
	}

	if err := customer.RecordPurchase(valueobject.NewMoneyUSD(createdEvent.Total)); err != nil {
		return err
	}

	if err := h.customerRepo.Save(ctx, customer); err != nil {
		h.logger.Error("failed to save customer stats",
			zap.String("order_number", createdEvent.OrderNumber),
			zap.String("customer_id", customer.ID.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("customer stats updated",
		zap.String("customer_id", customer.ID.String()),
		zap.Int64("total_purchases", customer.TotalPurchases),
	)

	return nil
}
