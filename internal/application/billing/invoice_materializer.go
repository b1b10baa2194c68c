package billing

import (
	"context"
	"fmt"

	"github.com/potterypos/backend/internal/domain/billing"
	"github.com/potterypos/backend/internal/domain/partner"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceMaterializer builds an invoice record as each order is
// created. The invoice copies the order's totals verbatim so the two
// always reconcile.
type InvoiceMaterializer struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewInvoiceMaterializer creates a new InvoiceMaterializer
func NewInvoiceMaterializer(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	logger *zap.Logger,
) *InvoiceMaterializer {
	return &InvoiceMaterializer{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceMaterializer) EventTypes() []string {
	return []string{sales.EventTypeOrderCreated}
}

// Handle materializes an invoice from an order created event
func (h *InvoiceMaterializer) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*sales.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	src := billing.InvoiceSource{
		OrderID:            createdEvent.AggregateID(),
		OrderNumber:        createdEvent.OrderNumber,
		CustomerID:         createdEvent.CustomerID,
		CustomerName:       createdEvent.CustomerName,
		Subtotal:           createdEvent.Subtotal,
		Discount:           createdEvent.Discount,
		DiscountPercentage: createdEvent.DiscountPercentage,
		Total:              createdEvent.Total,
		PaymentMethod:      string(createdEvent.PaymentMethod),
		IssuedAt:           createdEvent.OccurredAt(),
	}

	if createdEvent.CustomerID != nil {
		customer, err := h.customerRepo.FindByIDForTenant(ctx, event.TenantID(), *createdEvent.CustomerID)
		if err == nil {
			src.CustomerPhone = customer.Phone
		}
	}

	for _, line := range createdEvent.Lines {
		src.Lines = append(src.Lines, billing.InvoiceSourceLine{
			ProductID:         line.ProductID,
			ProductName:       line.ProductName,
			SKU:               line.SKU,
			Quantity:          line.Quantity,
			OriginalUnitPrice: line.OriginalUnitPrice,
			UnitPrice:         line.UnitPrice,
			Amount:            line.Amount,
		})
	}

	invoice, err := billing.NewInvoiceFromOrder(event.TenantID(), src)
	if err != nil {
		return err
	}

	if err := h.invoiceRepo.Save(ctx, invoice); err != nil {
		h.logger.Error("failed to save materialized invoice",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("invoice materialized",
		zap.String("invoice_number", invoice.InvoiceNumber),
	)

	return nil
}

// InvoiceCancelledHandler flags the invoice when its order is
// cancelled
type InvoiceCancelledHandler struct {
	invoiceRepo billing.InvoiceRepository
	logger      *zap.Logger
}

// NewInvoiceCancelledHandler creates a new InvoiceCancelledHandler
func NewInvoiceCancelledHandler(invoiceRepo billing.InvoiceRepository, logger *zap.Logger) *InvoiceCancelledHandler {
	return &InvoiceCancelledHandler{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceCancelledHandler) EventTypes() []string {
	return []string{sales.EventTypeOrderCancelled}
}

// Handle marks the order's invoice cancelled
func (h *InvoiceCancelledHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	cancelledEvent, ok := event.(*sales.OrderCancelledEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	invoice, err := h.invoiceRepo.FindByOrderID(ctx, event.TenantID(), event.AggregateID())
	if err != nil {
		h.logger.Warn("invoice cancellation skipped, invoice not found",
			zap.String("order_number", cancelledEvent.OrderNumber),
			zap.Error(err),
		)
		return nil
	}

	if !invoice.IsActive() {
		return nil
	}

	if err := invoice.MarkCancelled(); err != nil {
		return err
	}

	return h.invoiceRepo.Save(ctx, invoice)
}
