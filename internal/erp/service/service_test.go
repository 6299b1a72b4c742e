package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/bizpulse/internal/config"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	"github.com/smallbiznis/bizpulse/internal/erp/domain"
	"github.com/smallbiznis/bizpulse/internal/erp/repository"
	"github.com/smallbiznis/bizpulse/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range []string{
		`CREATE TABLE product_categories (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE sales_transactions (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			invoice_number TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			category_id TEXT,
			amount NUMERIC,
			due_amount NUMERIC,
			payment_status TEXT NOT NULL,
			transaction_date TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE inventory_items (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			sku TEXT NOT NULL,
			current_stock INTEGER NOT NULL,
			reorder_point INTEGER NOT NULL,
			sales_count INTEGER NOT NULL,
			unit_price NUMERIC
		)`,
	} {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func newTestService(conn *gorm.DB, repo domain.Repository) domain.Service {
	return New(Params{
		DB:   conn,
		Log:  zap.NewNop(),
		Repo: repo,
		Executor: db.NewExecutor(db.ExecutorParams{
			Config: db.Config{QueryTimeout: time.Second, QueryRetry: true},
			Log:    zap.NewNop(),
		}),
		Dashboard: config.NewStaticDashboardConfigHolder(config.DefaultDashboardConfig()),
	})
}

func seedSales(t *testing.T, conn *gorm.DB) {
	t.Helper()
	require.NoError(t, conn.Exec(
		`INSERT INTO product_categories (id, organization_id, name) VALUES (?, ?, ?), (?, ?, ?)`,
		"cat-bikes", "org", "Bikes",
		"cat-spares", "org", "Spares",
	).Error)

	insert := `INSERT INTO sales_transactions
		(id, organization_id, invoice_number, customer_name, category_id, amount, due_amount, payment_status, transaction_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	rows := []struct {
		id       string
		category any
		amount   any
		due      any
		status   string
		date     time.Time
	}{
		{"s1", "cat-bikes", 45000, 0, "paid", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"s2", "cat-spares", 1200.5, 1200.5, "overdue", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"s3", nil, 300, 100, "partial", time.Date(2024, 2, 10, 23, 0, 0, 0, time.UTC)},
		{"s4", "cat-missing", "n/a", 50, "overdue", time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC)},
		{"s5", "cat-spares", 800, 800, "overdue", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, r := range rows {
		require.NoError(t, conn.Exec(insert, r.id, "org", "INV-"+r.id, "Customer "+r.id, r.category, r.amount, r.due, r.status, r.date).Error)
	}
}

func TestServiceSalesAggregates(t *testing.T) {
	conn := setupTestDB(t)
	seedSales(t, conn)
	svc := newTestService(conn, repository.Provide())
	ctx := context.Background()

	r, err := daterange.Parse("2024-02-01", "2024-02-11")
	require.NoError(t, err)

	total, err := svc.SalesTotal(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, domain.SalesTotal{TotalSales: 1500.5, TransactionCount: 3, Currency: "INR"}, total)

	byCategory, err := svc.SalesByCategory(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategorySales{
		{Name: "Spares", Total: 1200.5, Count: 1},
		{Name: "Uncategorized", Total: 300, Count: 2},
	}, byCategory)

	overdue, err := svc.OverdueAmount(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, domain.Overdue{Amount: 1250.5, Count: 2, Currency: "INR"}, overdue)

	all, err := svc.SalesTotal(ctx, daterange.All)
	require.NoError(t, err)
	assert.Equal(t, 5, all.TransactionCount)
	assert.Equal(t, 47300.5, all.TotalSales)
}

func TestServiceInventory(t *testing.T) {
	conn := setupTestDB(t)
	insert := `INSERT INTO inventory_items
		(id, organization_id, product_name, sku, current_stock, reorder_point, sales_count, unit_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("Item %02d", i)
		require.NoError(t, conn.Exec(insert, fmt.Sprintf("i%02d", i), "org", name, "SKU"+name, 5+i*2, 15, 100-i, 250).Error)
	}
	svc := newTestService(conn, repository.Provide())
	ctx := context.Background()

	hot, err := svc.HotSelling(ctx, 0)
	require.NoError(t, err)
	require.Len(t, hot, 10)
	assert.Equal(t, "Item 00", hot[0].ProductName)
	assert.Equal(t, int64(100), hot[0].SalesCount)
	assert.Equal(t, 250.0, hot[0].UnitPrice.OrZero().InexactFloat64())

	hot, err = svc.HotSelling(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, hot, 3)

	_, err = svc.HotSelling(ctx, 101)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
	_, err = svc.HotSelling(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	// stock 5,7,9,11,13 are below 15
	require.Len(t, low, 5)
	assert.Equal(t, "Item 00", low[0].ProductName)
	assert.Equal(t, "Item 04", low[4].ProductName)
}

func TestServiceSurfacesStoreError(t *testing.T) {
	conn := setupTestDB(t)
	require.NoError(t, conn.Exec(`DROP TABLE sales_transactions`).Error)
	svc := newTestService(conn, repository.Provide())

	_, err := svc.SalesTotal(context.Background(), daterange.All)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table")
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListSales(ctx context.Context, conn *gorm.DB, filter domain.SalesFilter) ([]domain.SalesTransaction, error) {
	args := m.Called(ctx, conn, filter)
	rows, _ := args.Get(0).([]domain.SalesTransaction)
	return rows, args.Error(1)
}

func (m *mockRepository) ListTopSelling(ctx context.Context, conn *gorm.DB, limit int) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, conn, limit)
	items, _ := args.Get(0).([]domain.InventoryItem)
	return items, args.Error(1)
}

func (m *mockRepository) ListInventory(ctx context.Context, conn *gorm.DB) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, conn)
	items, _ := args.Get(0).([]domain.InventoryItem)
	return items, args.Error(1)
}

func TestServiceRetriesTransientStoreErrorOnce(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListInventory", mock.Anything, mock.Anything).Return(nil, driver.ErrBadConn).Once()
	repo.On("ListInventory", mock.Anything, mock.Anything).Return([]domain.InventoryItem{
		{ProductName: "Bell", CurrentStock: 1, ReorderPoint: 2},
	}, nil).Once()

	svc := newTestService(nil, repo)
	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Len(t, low, 1)
	repo.AssertExpectations(t)
}

func TestServiceReturnsStoreMessageVerbatim(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListSales", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New(`relation "sales_transactions" does not exist`)).Once()

	svc := newTestService(nil, repo)
	_, err := svc.OverdueAmount(context.Background(), daterange.All)
	require.Error(t, err)
	assert.Equal(t, `relation "sales_transactions" does not exist`, err.Error())
	repo.AssertNumberOfCalls(t, "ListSales", 1)
}
