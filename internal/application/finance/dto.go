package finance

import (
	"time"

	"github.com/potterypos/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// CreateExpenseRequest records a business expense
type CreateExpenseRequest struct {
	Description string     `json:"description" binding:"required,max=500"`
	Category    string     `json:"category" binding:"required"`
	Amount      string     `json:"amount" binding:"required,money"`
	IncurredAt  *time.Time `json:"incurred_at"`
	Notes       string     `json:"notes" binding:"max=2000"`
}

// UpdateExpenseRequest modifies a recorded expense
type UpdateExpenseRequest struct {
	Description string     `json:"description" binding:"required,max=500"`
	Category    string     `json:"category" binding:"required"`
	Amount      string     `json:"amount" binding:"required,money"`
	IncurredAt  *time.Time `json:"incurred_at"`
	Notes       string     `json:"notes" binding:"max=2000"`
}

// ExpenseResponse is the full expense representation
type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	IncurredAt  time.Time `json:"incurred_at"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToExpenseResponse converts a domain expense to its response form
func ToExpenseResponse(expense *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		Description: expense.Description,
		Category:    expense.Category.String(),
		Amount:      expense.Amount.StringFixed(2),
		IncurredAt:  expense.IncurredAt,
		Notes:       expense.Notes,
		CreatedAt:   expense.CreatedAt,
	}
}
