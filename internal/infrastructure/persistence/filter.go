package persistence

import (
	"fmt"
	"strings"

	"github.com/potterypos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedOrderColumns guards against order-by injection; only these
// columns may be sorted on.
var allowedOrderColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"sku":          true,
	"category":     true,
	"order_number": true,
	"total":        true,
	"issued_at":    true,
	"incurred_at":  true,
	"amount":       true,
	"stock":        true,
}

// applyFilter adds ordering and pagination to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if !allowedOrderColumns[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

// paginate counts the filtered rows and fetches one page
func paginate[T any](query *gorm.DB, filter shared.Filter, out *[]T) (int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := applyFilter(query, filter).Find(out).Error; err != nil {
		return 0, err
	}
	return total, nil
}
