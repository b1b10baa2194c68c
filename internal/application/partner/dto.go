package partner

import (
	"time"

	"github.com/potterypos/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerRequest creates a customer record
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Phone   string `json:"phone" binding:"required,max=20"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateCustomerRequest updates a customer record
type UpdateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Phone   string `json:"phone" binding:"required,max=20"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address" binding:"max=500"`
}

// CustomerResponse is the full customer representation
type CustomerResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email,omitempty"`
	Address        string     `json:"address,omitempty"`
	TotalPurchases int64      `json:"total_purchases"`
	TotalSpent     string     `json:"total_spent"`
	LastPurchaseAt *time.Time `json:"last_purchase_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToCustomerResponse converts a domain customer to its response form
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             customer.ID,
		Name:           customer.Name,
		Phone:          customer.Phone,
		Email:          customer.Email,
		Address:        customer.Address,
		TotalPurchases: customer.TotalPurchases,
		TotalSpent:     customer.TotalSpent.StringFixed(2),
		LastPurchaseAt: customer.LastPurchaseAt,
		CreatedAt:      customer.CreatedAt,
	}
}
