package finance

import (
	"context"
	"time"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExpenseRepository defines the persistence interface for expenses
type ExpenseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[Expense], error)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Expense, error)
	FindByCategory(ctx context.Context, tenantID uuid.UUID, category ExpenseCategory, filter shared.Filter) (*shared.Paginated[Expense], error)
	Save(ctx context.Context, expense *Expense) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
