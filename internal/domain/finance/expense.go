package finance

import (
	"time"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies a business expense
type ExpenseCategory string

const (
	ExpenseCategoryMaterials  ExpenseCategory = "materials"
	ExpenseCategoryRent       ExpenseCategory = "rent"
	ExpenseCategoryUtilities  ExpenseCategory = "utilities"
	ExpenseCategorySalaries   ExpenseCategory = "salaries"
	ExpenseCategoryEquipment  ExpenseCategory = "equipment"
	ExpenseCategoryMarketing  ExpenseCategory = "marketing"
	ExpenseCategoryTransport  ExpenseCategory = "transport"
	ExpenseCategoryOther      ExpenseCategory = "other"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryMaterials, ExpenseCategoryRent, ExpenseCategoryUtilities,
		ExpenseCategorySalaries, ExpenseCategoryEquipment, ExpenseCategoryMarketing,
		ExpenseCategoryTransport, ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// Expense is a recorded business outflow
type Expense struct {
	shared.TenantAggregateRoot
	Description string          `gorm:"type:varchar(500);not null"`
	Category    ExpenseCategory `gorm:"type:varchar(50);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IncurredAt  time.Time       `gorm:"not null;index"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a new expense record
func NewExpense(tenantID uuid.UUID, description string, category ExpenseCategory, amount valueobject.Money, incurredAt time.Time) (*Expense, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if incurredAt.IsZero() {
		incurredAt = time.Now()
	}

	return &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Description:         description,
		Category:            category,
		Amount:              amount.Amount(),
		IncurredAt:          incurredAt,
	}, nil
}

// Update modifies the expense record
func (e *Expense) Update(description string, category ExpenseCategory, amount valueobject.Money, incurredAt time.Time) error {
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	e.Description = description
	e.Category = category
	e.Amount = amount.Amount()
	if !incurredAt.IsZero() {
		e.IncurredAt = incurredAt
	}
	e.UpdatedAt = time.Now()
	return nil
}

// SetNotes attaches free-form notes to the expense
func (e *Expense) SetNotes(notes string) {
	e.Notes = notes
	e.UpdatedAt = time.Now()
}

// GetAmountMoney returns the expense amount as Money
func (e *Expense) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(e.Amount)
}
