package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogrepository "github.com/machbazar/storefront/internal/catalog/repository"
	"github.com/machbazar/storefront/internal/order/domain"
)

const (
	markStockApplied = `^UPDATE "orders" SET "stock_applied"=\$1 ` +
		`WHERE order_id = \$2 AND status = \$3 AND stock_applied = \$4$`
	recordSale = `^UPDATE "products" SET "sold_count"=`
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestApplyStockOnce_CommitsFlagWithSales(t *testing.T) {
	db, mock := newMockDB(t)
	orders := NewGormOrderRepository(db)
	products := catalogrepository.NewGormProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(markStockApplied).
		WithArgs(true, "MB-1", domain.StatusVerified, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(recordSale).
		WithArgs(3.0, 3.0, sqlmock.AnyArg(), "rui").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	marked, err := orders.ApplyStockOnce(context.Background(), "MB-1", func(ctx context.Context) error {
		return products.RecordSale(ctx, "rui", 3)
	})
	require.NoError(t, err)
	assert.True(t, marked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStockOnce_RollsBackFlagOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	orders := NewGormOrderRepository(db)
	products := catalogrepository.NewGormProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(markStockApplied).
		WithArgs(true, "MB-1", domain.StatusVerified, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(recordSale).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	marked, err := orders.ApplyStockOnce(context.Background(), "MB-1", func(ctx context.Context) error {
		return products.RecordSale(ctx, "rui", 3)
	})
	assert.ErrorContains(t, err, "deadlock detected")
	assert.False(t, marked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStockOnce_AlreadyApplied(t *testing.T) {
	db, mock := newMockDB(t)
	orders := NewGormOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(markStockApplied).
		WithArgs(true, "MB-1", domain.StatusVerified, false).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	called := false
	marked, err := orders.ApplyStockOnce(context.Background(), "MB-1", func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, marked)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCustomerByPhone(t *testing.T) {
	db, mock := newMockDB(t)
	orders := NewGormOrderRepository(db)

	query := `^SELECT \* FROM "orders" WHERE customer->>'kind' = \$1 AND customer->'customer'->>'phone' = \$2 ` +
		`ORDER BY created_at DESC,"orders"."id" LIMIT \$3$`
	mock.ExpectQuery(query).
		WithArgs("populated", "01712345678", 1).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "customer"}).
			AddRow("MB-1", `{"kind":"populated","customer":{"name":"Rahim","phone":"01712345678","address":"Dhanmondi"}}`))
	mock.ExpectQuery(query).
		WithArgs("populated", "01899999999", 1).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "customer"}))

	customer, err := orders.FindCustomerByPhone(context.Background(), "01712345678")
	require.NoError(t, err)
	assert.Equal(t, "Dhanmondi", customer.Address)

	_, err = orders.FindCustomerByPhone(context.Background(), "01899999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
