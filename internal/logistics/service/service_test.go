package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	"github.com/smallbiznis/bizpulse/internal/logistics/domain"
	"github.com/smallbiznis/bizpulse/internal/logistics/repository"
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
		`CREATE TABLE shipments (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			shipment_number TEXT NOT NULL,
			shipment_type TEXT NOT NULL,
			status TEXT NOT NULL,
			expected_date TIMESTAMP,
			received_date TIMESTAMP,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE deliveries (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			delivery_number TEXT NOT NULL,
			delivery_type TEXT NOT NULL,
			status TEXT NOT NULL,
			delivery_date TIMESTAMP,
			customer_name TEXT,
			address TEXT,
			created_at TIMESTAMP NOT NULL
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
	})
}

func TestServiceShipmentSummary(t *testing.T) {
	conn := setupTestDB(t)
	insert := `INSERT INTO shipments
		(id, organization_id, shipment_number, shipment_type, status, received_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	feb := func(d int) time.Time { return time.Date(2024, 2, d, 12, 0, 0, 0, time.UTC) }
	rows := []struct {
		id, shipmentType, status string
		received                 any
		created                  time.Time
	}{
		{"sh1", "regular", "pending", nil, feb(1)},
		{"sh2", "regular", "pending", nil, feb(20)},
		{"sh3", "regular", "received", feb(5), time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
		{"sh4", "regular", "received", feb(25), feb(2)},
		{"sh5", "spare", "received", feb(10), feb(1)},
		{"sh6", "spare", "pending", nil, feb(3)},
	}
	for _, r := range rows {
		require.NoError(t, conn.Exec(insert, r.id, "org", "SHP-"+r.id, r.shipmentType, r.status, r.received, r.created).Error)
	}

	svc := newTestService(conn, repository.Provide())

	r, err := daterange.Parse("2024-02-01", "2024-02-15")
	require.NoError(t, err)
	got, err := svc.ShipmentSummary(context.Background(), r)
	require.NoError(t, err)
	// received counts follow received_date, not created_at
	assert.Equal(t, domain.ShipmentSummary{Due: 1, Received: 1, Spare: 1}, got)

	all, err := svc.ShipmentSummary(context.Background(), daterange.All)
	require.NoError(t, err)
	assert.Equal(t, domain.ShipmentSummary{Due: 2, Received: 2, Spare: 1}, all)
}

func TestServiceDeliveries(t *testing.T) {
	conn := setupTestDB(t)
	insert := `INSERT INTO deliveries
		(id, organization_id, delivery_number, delivery_type, status, customer_name, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	mar := func(d int) time.Time { return time.Date(2024, 3, d, 8, 0, 0, 0, time.UTC) }
	rows := []struct {
		id, deliveryType, status string
		created                  time.Time
	}{
		{"d1", "cycle_delivered", "completed", mar(1)},
		{"d2", "pickup_pending", "pending", mar(2)},
		{"d3", "pickup_pending", "completed", mar(3)},
		{"d4", "outside_delivery", "pending", mar(4)},
		{"d5", "teleport", "completed", mar(5)},
		{"d6", "pickup_cleared", "completed", mar(20)},
	}
	for _, r := range rows {
		require.NoError(t, conn.Exec(insert, r.id, "org", "DLV-"+r.id, r.deliveryType, r.status, "Customer", "Street 1", r.created).Error)
	}

	svc := newTestService(conn, repository.Provide())
	ctx := context.Background()
	r, err := daterange.Parse("2024-03-01", "2024-03-10")
	require.NoError(t, err)

	summary, err := svc.DeliverySummary(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliverySummary{CycleDelivered: 1, PickupPending: 1, OutsideDelivery: 1}, summary)

	list, err := svc.DeliveryList(ctx, r, "")
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "d5", list[0].ID)
	assert.Equal(t, "d1", list[4].ID)
	require.NotNil(t, list[0].CustomerName)
	assert.Equal(t, "Customer", *list[0].CustomerName)

	pending, err := svc.DeliveryList(ctx, daterange.All, "pickup_pending")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "d3", pending[0].ID)

	_, err = svc.DeliveryList(ctx, r, "teleport")
	assert.ErrorIs(t, err, domain.ErrInvalidDeliveryType)

	empty, err := svc.DeliveryList(ctx, r, "pickup_cleared")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CountShipments(ctx context.Context, conn *gorm.DB, filter domain.ShipmentFilter) (int64, error) {
	args := m.Called(ctx, conn, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) ListDeliveries(ctx context.Context, conn *gorm.DB, filter domain.DeliveryFilter) ([]domain.Delivery, error) {
	args := m.Called(ctx, conn, filter)
	rows, _ := args.Get(0).([]domain.Delivery)
	return rows, args.Error(1)
}

func TestServiceShipmentSummaryFailsWithoutPartialResult(t *testing.T) {
	repo := new(mockRepository)
	storeErr := errors.New("permission denied for table shipments")
	repo.On("CountShipments", mock.Anything, mock.Anything, mock.MatchedBy(func(f domain.ShipmentFilter) bool {
		return f.ShipmentType == domain.ShipmentTypeSpare
	})).Return(int64(0), storeErr)
	repo.On("CountShipments", mock.Anything, mock.Anything, mock.Anything).Return(int64(7), nil)

	svc := newTestService(nil, repo)
	got, err := svc.ShipmentSummary(context.Background(), daterange.All)
	require.ErrorIs(t, err, storeErr)
	assert.Equal(t, domain.ShipmentSummary{}, got)
}

func TestServiceDeliverySummarySurfacesStoreError(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListDeliveries", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("canceling statement due to statement timeout"))

	svc := newTestService(nil, repo)
	_, err := svc.DeliverySummary(context.Background(), daterange.All)
	require.EqualError(t, err, "canceling statement due to statement timeout")
}
