package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/potterypos/backend/internal/domain/sales"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db     *gorm.DB
	prefix string
}

// NewGormOrderRepository creates a new GormOrderRepository. prefix is
// the order number prefix, normally "SO".
func NewGormOrderRepository(db *gorm.DB, prefix string) *GormOrderRepository {
	if prefix == "" {
		prefix = "SO"
	}
	return &GormOrderRepository{db: db, prefix: prefix}
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Order, error) {
	var order sales.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by order number within a tenant
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*sales.Order, error) {
	var order sales.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForTenant finds all orders for a tenant with filtering
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.Order], error) {
	query := r.db.WithContext(ctx).Model(&sales.Order{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var orders []sales.Order
	total, err := paginate(query.Preload("Items"), filter, &orders)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindByCustomer finds a customer's orders
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.Order], error) {
	query := r.db.WithContext(ctx).Model(&sales.Order{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)

	var orders []sales.Order
	total, err := paginate(query.Preload("Items"), filter, &orders)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindByDateRange finds orders created within the window, items
// preloaded, oldest first
func (r *GormOrderRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*sales.Order, error) {
	var orders []*sales.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CountForTenant counts orders for a tenant
func (r *GormOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sales.Order{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

// GenerateOrderNumber generates the next order number for a tenant.
// Format: SO-YYYY-NNNNN, numbering restarts each year.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("%s-%d-", r.prefix, year)

	var lastOrder sales.Order
	err := r.db.WithContext(ctx).
		Model(&sales.Order{}).
		Where("tenant_id = ? AND order_number LIKE ?", tenantID, prefix+"%").
		Order("order_number DESC").
		First(&lastOrder).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.OrderNumber != "" {
		parts := strings.Split(lastOrder.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

var _ sales.OrderRepository = (*GormOrderRepository)(nil)
