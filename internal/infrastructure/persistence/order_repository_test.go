package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/potterypos/backend/internal/domain/shared"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB, "SO"), mock, mockDB
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	t.Run("continues the yearly sequence", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		year := time.Now().Year()
		last := fmt.Sprintf("SO-%d-00041", year)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "order_number"}).
			AddRow(uuid.New(), tenantID, last)

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE tenant_id = \$1 AND order_number LIKE \$2 ORDER BY order_number DESC,.* LIMIT .*`).
			WithArgs(tenantID, fmt.Sprintf("SO-%d-", year)+"%", 1).
			WillReturnRows(rows)

		number, err := repo.GenerateOrderNumber(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SO-%d-00042", year), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts at one when the year has no orders", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		year := time.Now().Year()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE tenant_id = \$1 AND order_number LIKE \$2 ORDER BY order_number DESC,.* LIMIT .*`).
			WithArgs(tenantID, fmt.Sprintf("SO-%d-", year)+"%", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		number, err := repo.GenerateOrderNumber(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("SO-%d-00001", year), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("uses the configured prefix", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		dialector := postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"})
		gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
		require.NoError(t, err)

		repo := NewGormOrderRepository(gormDB, "POS")
		tenantID := uuid.New()
		year := time.Now().Year()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE tenant_id = \$1 AND order_number LIKE \$2`).
			WithArgs(tenantID, fmt.Sprintf("POS-%d-", year)+"%", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		number, err := repo.GenerateOrderNumber(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("POS-%d-00001", year), number)
	})
}

func TestGormOrderRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds order with items", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		orderID := uuid.New()

		orderRows := sqlmock.NewRows([]string{"id", "tenant_id", "order_number", "customer_name", "subtotal", "total", "payment_method", "status", "payment_status"}).
			AddRow(orderID, tenantID, "SO-2026-00007", "Walk-in", decimal.NewFromInt(50), decimal.NewFromInt(50), "cash", "completed", "paid")

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, orderID, 1).
			WillReturnRows(orderRows)

		itemRows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "sku", "quantity", "unit_price", "amount"}).
			AddRow(uuid.New(), orderID, uuid.New(), "Glazed Mug", "MUG-001", 2, decimal.NewFromInt(25), decimal.NewFromInt(50))

		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		order, err := repo.FindByIDForTenant(context.Background(), tenantID, orderID)

		assert.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "SO-2026-00007", order.OrderNumber)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "MUG-001", order.Items[0].SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByIDForTenant(context.Background(), tenantID, orderID)

		assert.Error(t, err)
		assert.Nil(t, order)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_CountForTenant(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE tenant_id = \$1`).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountForTenant(context.Background(), tenantID)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
