package report

import (
	"github.com/potterypos/backend/internal/domain/catalog"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockItem is one product flagged on the dashboard
type LowStockItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Category  string    `json:"category"`
	Stock     int64     `json:"stock"`
}

// DashboardSummary is the storefront snapshot shown when the register
// opens: today's activity plus the products that need reordering.
type DashboardSummary struct {
	TodayOrderCount int64           `json:"today_order_count"`
	TodaySales      decimal.Decimal `json:"today_sales"`
	ProductCount    int64           `json:"product_count"`
	CustomerCount   int64           `json:"customer_count"`
	LowStock        []LowStockItem  `json:"low_stock"`
}

// BuildDashboard assembles the summary. todayOrders should already be
// limited to the current local day; cancelled orders are excluded.
func BuildDashboard(todayOrders []*sales.Order, productCount, customerCount int64, lowStock []catalog.Product) DashboardSummary {
	summary := DashboardSummary{
		TodaySales:    decimal.Zero,
		ProductCount:  productCount,
		CustomerCount: customerCount,
		LowStock:      make([]LowStockItem, 0, len(lowStock)),
	}

	for _, order := range todayOrders {
		if order.IsCancelled() {
			continue
		}
		summary.TodayOrderCount++
		summary.TodaySales = summary.TodaySales.Add(order.Total)
	}

	for _, product := range lowStock {
		summary.LowStock = append(summary.LowStock, LowStockItem{
			ProductID: product.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Category:  product.Category,
			Stock:     product.Stock,
		})
	}

	return summary
}
