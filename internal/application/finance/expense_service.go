package finance

import (
	"context"
	"time"

	"github.com/potterypos/backend/internal/domain/finance"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService handles expense tracking operations
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, tenantID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	amount, err := parseMoney(req.Amount)
	if err != nil {
		return nil, err
	}

	incurredAt := time.Now()
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}

	expense, err := finance.NewExpense(tenantID, req.Description, finance.ExpenseCategory(req.Category), amount, incurredAt)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		expense.SetNotes(req.Notes)
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		zap.String("category", expense.Category.String()),
		zap.String("amount", expense.Amount.String()),
	)

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, tenantID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses with filtering and pagination
func (s *ExpenseService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ExpenseResponse, int64, error) {
	page, err := s.expenseRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ExpenseResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToExpenseResponse(&page.Items[i]))
	}
	return items, page.Total, nil
}

// ListByCategory retrieves expenses in one category
func (s *ExpenseService) ListByCategory(ctx context.Context, tenantID uuid.UUID, category string, filter shared.Filter) ([]ExpenseResponse, int64, error) {
	cat := finance.ExpenseCategory(category)
	if !cat.IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
	}

	page, err := s.expenseRepo.FindByCategory(ctx, tenantID, cat, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ExpenseResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToExpenseResponse(&page.Items[i]))
	}
	return items, page.Total, nil
}

// Update modifies a recorded expense
func (s *ExpenseService) Update(ctx context.Context, tenantID, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}

	amount, err := parseMoney(req.Amount)
	if err != nil {
		return nil, err
	}

	incurredAt := expense.IncurredAt
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}

	if err := expense.Update(req.Description, finance.ExpenseCategory(req.Category), amount, incurredAt); err != nil {
		return nil, err
	}
	expense.SetNotes(req.Notes)

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes a recorded expense
func (s *ExpenseService) Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	if _, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID); err != nil {
		return err
	}
	return s.expenseRepo.DeleteForTenant(ctx, tenantID, expenseID)
}

func parseMoney(raw string) (valueobject.Money, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return valueobject.ZeroUSD(), shared.NewDomainError("INVALID_AMOUNT", "Amount is not a valid number")
	}
	return valueobject.NewMoneyUSD(amount), nil
}
