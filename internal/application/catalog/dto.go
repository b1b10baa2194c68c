package catalog

import (
	"time"

	"github.com/potterypos/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateProductRequest creates a catalog product
type CreateProductRequest struct {
	SKU      string `json:"sku" binding:"required,max=50"`
	Name     string `json:"name" binding:"required,max=200"`
	Category string `json:"category" binding:"required,max=100"`
	Price    string `json:"price" binding:"required,money"`
	Cost     string `json:"cost" binding:"omitempty,money"`
	Stock    int64  `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest updates a product's descriptive fields
type UpdateProductRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Category string `json:"category" binding:"required,max=100"`
}

// SetPriceRequest changes a product's selling or cost price
type SetPriceRequest struct {
	Price string `json:"price" binding:"required,money"`
}

// AdjustStockRequest applies a manual stock correction
type AdjustStockRequest struct {
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"max=200"`
}

// ProductResponse is the full product representation
type ProductResponse struct {
	ID        uuid.UUID `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     string    `json:"price"`
	Cost      *string   `json:"cost,omitempty"`
	Stock     int64     `json:"stock"`
	Status    string    `json:"status"`
	LowStock  bool      `json:"low_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(product *catalog.Product, lowStockThreshold int64) ProductResponse {
	resp := ProductResponse{
		ID:        product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		Category:  product.Category,
		Price:     product.Price.StringFixed(2),
		Stock:     product.Stock,
		Status:    string(product.Status),
		LowStock:  product.IsLowStock(lowStockThreshold),
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
	if product.CostPrice != nil {
		cost := product.CostPrice.StringFixed(2)
		resp.Cost = &cost
	}
	return resp
}
