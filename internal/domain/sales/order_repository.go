package sales

import (
	"context"
	"time"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)
	FindByCustomer(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// GenerateOrderNumber produces the next number in the
	// SO-YYYY-NNNNN sequence for the tenant and year.
	GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
