package report

import (
	"sort"
	"time"

	"github.com/potterypos/backend/internal/domain/catalog"
	"github.com/potterypos/backend/internal/domain/finance"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailySales aggregates completed orders for one local calendar day
type DailySales struct {
	Date       string          `json:"date"`
	OrderCount int64           `json:"order_count"`
	GrossSales decimal.Decimal `json:"gross_sales"`
	Discounts  decimal.Decimal `json:"discounts"`
	NetSales   decimal.Decimal `json:"net_sales"`
}

// SalesByDay buckets orders into local calendar days. Cancelled orders
// are excluded entirely rather than netted out, since their stock and
// revenue were already reversed.
func SalesByDay(orders []*sales.Order, loc *time.Location) []DailySales {
	if loc == nil {
		loc = time.Local
	}

	byDay := make(map[string]*DailySales)
	for _, order := range orders {
		if order.IsCancelled() {
			continue
		}
		day := order.CreatedAt.In(loc).Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &DailySales{
				Date:       day,
				GrossSales: decimal.Zero,
				Discounts:  decimal.Zero,
				NetSales:   decimal.Zero,
			}
			byDay[day] = row
		}
		row.OrderCount++
		row.GrossSales = row.GrossSales.Add(order.Subtotal)
		row.Discounts = row.Discounts.Add(order.Discount)
		row.NetSales = row.NetSales.Add(order.Total)
	}

	rows := make([]DailySales, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// CategoryInventory aggregates stock position for one product category
type CategoryInventory struct {
	Category      string          `json:"category"`
	ProductCount  int64           `json:"product_count"`
	TotalStock    int64           `json:"total_stock"`
	StockValue    decimal.Decimal `json:"stock_value"`
	LowStockCount int64           `json:"low_stock_count"`
}

// InventoryByCategory groups active products by category. Archived
// products are skipped.
func InventoryByCategory(products []*catalog.Product, lowStockThreshold int64) []CategoryInventory {
	byCategory := make(map[string]*CategoryInventory)
	for _, product := range products {
		if !product.IsActive() {
			continue
		}
		row, ok := byCategory[product.Category]
		if !ok {
			row = &CategoryInventory{
				Category:   product.Category,
				StockValue: decimal.Zero,
			}
			byCategory[product.Category] = row
		}
		row.ProductCount++
		row.TotalStock += product.Stock
		row.StockValue = row.StockValue.Add(product.StockValue())
		if product.IsLowStock(lowStockThreshold) {
			row.LowStockCount++
		}
	}

	rows := make([]CategoryInventory, 0, len(byCategory))
	for _, row := range byCategory {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

// TopCustomer is one row of the best-customers leaderboard
type TopCustomer struct {
	CustomerID  uuid.UUID       `json:"customer_id"`
	Name        string          `json:"name"`
	OrderCount  int64           `json:"order_count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	LastOrderAt time.Time       `json:"last_order_at"`
}

// TopCustomers ranks customers by what they spent on the period's
// orders. Cancelled orders and walk-in orders (no customer on file)
// are left out. Spend ties are broken by order count.
func TopCustomers(orders []*sales.Order, limit int) []TopCustomer {
	byCustomer := make(map[uuid.UUID]*TopCustomer)
	for _, order := range orders {
		if order.IsCancelled() || order.CustomerID == nil {
			continue
		}
		row, ok := byCustomer[*order.CustomerID]
		if !ok {
			row = &TopCustomer{
				CustomerID: *order.CustomerID,
				Name:       order.CustomerName,
				TotalSpent: decimal.Zero,
			}
			byCustomer[*order.CustomerID] = row
		}
		row.OrderCount++
		row.TotalSpent = row.TotalSpent.Add(order.Total)
		if order.CreatedAt.After(row.LastOrderAt) {
			row.LastOrderAt = order.CreatedAt
		}
	}

	rows := make([]TopCustomer, 0, len(byCustomer))
	for _, row := range byCustomer {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalSpent.Equal(rows[j].TotalSpent) {
			return rows[i].TotalSpent.GreaterThan(rows[j].TotalSpent)
		}
		return rows[i].OrderCount > rows[j].OrderCount
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// CategoryExpense aggregates expenses for one category
type CategoryExpense struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Total    decimal.Decimal `json:"total"`
	Average  decimal.Decimal `json:"average"`
}

// ExpensesByCategory groups expenses by category, sorted by total
// descending so the biggest cost centers lead.
func ExpensesByCategory(expenses []*finance.Expense) []CategoryExpense {
	byCategory := make(map[finance.ExpenseCategory]*CategoryExpense)
	for _, expense := range expenses {
		row, ok := byCategory[expense.Category]
		if !ok {
			row = &CategoryExpense{
				Category: expense.Category.String(),
				Total:    decimal.Zero,
			}
			byCategory[expense.Category] = row
		}
		row.Count++
		row.Total = row.Total.Add(expense.Amount)
	}

	rows := make([]CategoryExpense, 0, len(byCategory))
	for _, row := range byCategory {
		row.Average = row.Total.Div(decimal.NewFromInt(row.Count))
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// defaultCOGSRatio estimates cost of goods when a product has no
// recorded cost price.
var defaultCOGSRatio = decimal.NewFromFloat(0.6)

// ProfitAndLoss summarizes revenue against costs for a period
type ProfitAndLoss struct {
	Revenue       decimal.Decimal `json:"revenue"`
	COGS          decimal.Decimal `json:"cogs"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	Expenses      decimal.Decimal `json:"expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`
	COGSEstimated bool            `json:"cogs_estimated"`
}

// ComputeProfitAndLoss builds a P&L from orders and expenses. costOf
// resolves a product's recorded unit cost; lines whose product has
// none fall back to 60% of the line amount and flag the COGS figure as
// estimated. Cancelled orders contribute nothing.
func ComputeProfitAndLoss(orders []*sales.Order, expenses []*finance.Expense, costOf func(productID uuid.UUID) *decimal.Decimal) ProfitAndLoss {
	pnl := ProfitAndLoss{
		Revenue:   decimal.Zero,
		COGS:      decimal.Zero,
		Expenses:  decimal.Zero,
		NetProfit: decimal.Zero,
	}

	for _, order := range orders {
		if order.IsCancelled() {
			continue
		}
		pnl.Revenue = pnl.Revenue.Add(order.Total)
		for _, item := range order.Items {
			var cost *decimal.Decimal
			if !item.AdHoc && costOf != nil {
				cost = costOf(item.ProductID)
			}
			if cost != nil {
				pnl.COGS = pnl.COGS.Add(cost.Mul(decimal.NewFromInt(item.Quantity)))
			} else {
				pnl.COGS = pnl.COGS.Add(item.Amount.Mul(defaultCOGSRatio))
				pnl.COGSEstimated = true
			}
		}
	}

	for _, expense := range expenses {
		pnl.Expenses = pnl.Expenses.Add(expense.Amount)
	}

	pnl.GrossProfit = pnl.Revenue.Sub(pnl.COGS)
	pnl.NetProfit = pnl.GrossProfit.Sub(pnl.Expenses)
	if pnl.Revenue.IsPositive() {
		pnl.ProfitMargin = pnl.NetProfit.Div(pnl.Revenue).Mul(decimal.NewFromInt(100))
	} else {
		pnl.ProfitMargin = decimal.Zero
	}
	return pnl
}
