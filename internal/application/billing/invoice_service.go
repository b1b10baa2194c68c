package billing

import (
	"context"

	"github.com/potterypos/backend/internal/domain/billing"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService handles invoice queries
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByOrderID retrieves the invoice materialized for an order
func (s *InvoiceService) GetByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByOrderID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByInvoiceNumber retrieves an invoice by its number
func (s *InvoiceService) GetByInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByInvoiceNumber(ctx, tenantID, invoiceNumber)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]InvoiceListItemResponse, int64, error) {
	page, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]InvoiceListItemResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToInvoiceListItemResponse(&page.Items[i]))
	}
	return items, page.Total, nil
}

// Search finds invoices whose search haystack contains the term
func (s *InvoiceService) Search(ctx context.Context, tenantID uuid.UUID, term string, filter shared.Filter) ([]InvoiceListItemResponse, int64, error) {
	page, err := s.invoiceRepo.Search(ctx, tenantID, term, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]InvoiceListItemResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToInvoiceListItemResponse(&page.Items[i]))
	}
	return items, page.Total, nil
}
