package catalog

import (
	"context"
	"fmt"

	"github.com/potterypos/backend/internal/domain/catalog"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockAdjustmentHandler keeps catalog stock in line with order
// activity: order creation decrements, cancellation restores. Ad-hoc
// lines have no catalog product and are skipped.
type StockAdjustmentHandler struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewStockAdjustmentHandler creates a new StockAdjustmentHandler
func NewStockAdjustmentHandler(productRepo catalog.ProductRepository, logger *zap.Logger) *StockAdjustmentHandler {
	return &StockAdjustmentHandler{
		productRepo: productRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *StockAdjustmentHandler) EventTypes() []string {
	return []string{sales.EventTypeOrderCreated, sales.EventTypeOrderCancelled}
}

// Handle applies the stock delta implied by an order event. Each line
// is adjusted independently; one missing product does not block the
// rest.
func (h *StockAdjustmentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var lines []sales.OrderLineSnapshot
	var orderNumber string
	sign := int64(-1)

	switch e := event.(type) {
	case *sales.OrderCreatedEvent:
		lines = e.Lines
		orderNumber = e.OrderNumber
	case *sales.OrderCancelledEvent:
		lines = e.Lines
		orderNumber = e.OrderNumber
		sign = 1
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	for _, line := range lines {
		if line.AdHoc {
			continue
		}

		product, err := h.productRepo.FindByIDForTenant(ctx, event.TenantID(), line.ProductID)
		if err != nil {
			h.logger.Warn("stock adjustment skipped, product not found",
				zap.String("order_number", orderNumber),
				zap.String("product_id", line.ProductID.String()),
				zap.Error(err),
			)
			continue
		}

		product.AdjustStock(sign * line.Quantity)

		if err := h.productRepo.Save(ctx, product); err != nil {
			h.logger.Error("failed to save stock adjustment",
				zap.String("order_number", orderNumber),
				zap.String("sku", product.SKU),
				zap.Error(err),
			)
			continue
		}

		h.logger.Debug("stock adjusted",
			zap.String("sku", product.SKU),
			zap.Int64("delta", sign*line.Quantity),
			zap.Int64("new_stock", product.Stock),
		)
	}

	return nil
}
