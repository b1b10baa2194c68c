package report

import (
	"context"
	"time"

	"github.com/potterypos/backend/internal/domain/catalog"
	"github.com/potterypos/backend/internal/domain/finance"
	"github.com/potterypos/backend/internal/domain/partner"
	"github.com/potterypos/backend/internal/domain/report"
	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// topCustomerLimit caps the best-customers leaderboard
const topCustomerLimit = 10

// ReportService aggregates orders, inventory, customers and expenses
// into the dashboard and reporting views. Aggregation happens in
// memory over the period's rows; at the store volumes this system
// serves, a day holds dozens of orders, not millions.
type ReportService struct {
	orderRepo    sales.OrderRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	expenseRepo  finance.ExpenseRepository
	location     *time.Location
	lowStock     int64
	dashLowStock int64
	logger       *zap.Logger
}

// NewReportService creates a new ReportService. loc determines which
// local calendar daily buckets follow.
func NewReportService(
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	expenseRepo finance.ExpenseRepository,
	loc *time.Location,
	lowStockThreshold int64,
	dashboardLowStock int64,
	logger *zap.Logger,
) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		expenseRepo:  expenseRepo,
		location:     loc,
		lowStock:     lowStockThreshold,
		dashLowStock: dashboardLowStock,
		logger:       logger,
	}
}

// Dashboard returns today's activity snapshot plus the low-stock list
// using the tighter dashboard threshold.
func (s *ReportService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*report.DashboardSummary, error) {
	now := time.Now().In(s.location)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	orders, err := s.orderRepo.FindByDateRange(ctx, tenantID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	customerCount, err := s.customerRepo.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(ctx, tenantID, s.dashLowStock)
	if err != nil {
		return nil, err
	}

	summary := report.BuildDashboard(orders, productCount, customerCount, lowStock)
	return &summary, nil
}

// SalesByDay returns daily sales totals for the period
func (s *ReportService) SalesByDay(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]report.DailySales, error) {
	orders, err := s.orderRepo.FindByDateRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return report.SalesByDay(orders, s.location), nil
}

// InventoryByCategory returns the stock position per category.
// threshold overrides the configured low-stock cutoff when positive.
func (s *ReportService) InventoryByCategory(ctx context.Context, tenantID uuid.UUID, threshold int64) ([]report.CategoryInventory, error) {
	if threshold <= 0 {
		threshold = s.lowStock
	}

	products, err := s.allProducts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return report.InventoryByCategory(products, threshold), nil
}

// TopCustomers returns the ten best customers by spend within the
// period, cancelled orders excluded.
func (s *ReportService) TopCustomers(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]report.TopCustomer, error) {
	orders, err := s.orderRepo.FindByDateRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return report.TopCustomers(orders, topCustomerLimit), nil
}

// ExpensesByCategory returns expense totals per category for the period
func (s *ReportService) ExpensesByCategory(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]report.CategoryExpense, error) {
	expenses, err := s.expenseRepo.FindByDateRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return report.ExpensesByCategory(expenses), nil
}

// ProfitAndLoss returns the P&L for the period. Lines whose product
// has a recorded cost use it; the rest are estimated at 60% of the
// sale amount.
func (s *ReportService) ProfitAndLoss(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*report.ProfitAndLoss, error) {
	orders, err := s.orderRepo.FindByDateRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindByDateRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	costs, err := s.costIndex(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	pnl := report.ComputeProfitAndLoss(orders, expenses, func(productID uuid.UUID) *decimal.Decimal {
		return costs[productID]
	})
	return &pnl, nil
}

// costIndex loads every product's recorded cost price keyed by ID
func (s *ReportService) costIndex(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]*decimal.Decimal, error) {
	products, err := s.allProducts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	costs := make(map[uuid.UUID]*decimal.Decimal, len(products))
	for _, product := range products {
		if product.CostPrice != nil {
			cost := *product.CostPrice
			costs[product.ID] = &cost
		}
	}
	return costs, nil
}

func (s *ReportService) allProducts(ctx context.Context, tenantID uuid.UUID) ([]*catalog.Product, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000

	var all []*catalog.Product
	for {
		page, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return nil, err
		}
		for i := range page.Items {
			all = append(all, &page.Items[i])
		}
		if filter.Page >= page.TotalPages {
			break
		}
		filter.Page++
	}
	return all, nil
}
