package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/potterypos/backend/internal/domain/finance"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForTenant finds an expense by ID within a tenant
func (r *GormExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAllForTenant finds all expenses for a tenant with filtering
func (r *GormExpenseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Expense], error) {
	query := r.db.WithContext(ctx).Model(&finance.Expense{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		query = query.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var expenses []finance.Expense
	total, err := paginate(query, filter, &expenses)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(expenses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindByDateRange finds expenses incurred within the window
func (r *GormExpenseRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*finance.Expense, error) {
	var expenses []*finance.Expense
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND incurred_at >= ? AND incurred_at < ?", tenantID, from, to).
		Order("incurred_at ASC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByCategory finds expenses in one category
func (r *GormExpenseRepository) FindByCategory(ctx context.Context, tenantID uuid.UUID, category finance.ExpenseCategory, filter shared.Filter) (*shared.Paginated[finance.Expense], error) {
	query := r.db.WithContext(ctx).Model(&finance.Expense{}).
		Where("tenant_id = ? AND category = ?", tenantID, category)

	var expenses []finance.Expense
	total, err := paginate(query, filter, &expenses)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(expenses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// DeleteForTenant deletes an expense within a tenant
func (r *GormExpenseRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&finance.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts expenses for a tenant
func (r *GormExpenseRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&finance.Expense{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
