package billing

import (
	"context"
	"time"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines the persistence interface for invoices
type InvoiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindByOrderID(ctx context.Context, tenantID uuid.UUID, orderID uuid.UUID) (*Invoice, error)
	FindByInvoiceNumber(ctx context.Context, tenantID uuid.UUID, invoiceNumber string) (*Invoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[Invoice], error)
	Search(ctx context.Context, tenantID uuid.UUID, term string, filter shared.Filter) (*shared.Paginated[Invoice], error)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
