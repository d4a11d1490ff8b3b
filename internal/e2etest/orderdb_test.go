package service_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/sklep-internetowy/backend/internal/adapter/config"
	"github.com/sklep-internetowy/backend/internal/adapter/storage"
	"github.com/sklep-internetowy/backend/internal/adapter/storage/repository"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/sklep-internetowy/backend/internal/core/port"
	"github.com/sklep-internetowy/backend/internal/core/port/mock"
	"github.com/sklep-internetowy/backend/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// getDeps connects to the database named by TEST_DATABASE_URI and
// applies the order-service migrations. Tests are skipped when no test
// database is configured.
func getDeps(t *testing.T) (*storage.DB, *repository.OrderRepository) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	db, err := storage.NewDBStorage(context.Background(), &config.Database{DSN: dsn, MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.RunMigrations(storage.MigrationsOrders))

	repo, err := repository.NewOrderRepository(db)
	require.NoError(t, err)

	return db, repo
}

func uniqueUser(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func countRows(t *testing.T, db *storage.DB, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestOrderDB_CreateOrderCommit(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	db, repo := getDeps(t)
	userID := uniqueUser("buyer")

	ordersBefore := countRows(t, db, "orders")
	linesBefore := countRows(t, db, "order_items")

	catalog := mock.NewMockCatalogClient(mockCtrl)
	catalog.EXPECT().GetProduct(gomock.Any(), "p1").
		Return(&port.CatalogProduct{ID: "p1", Name: "Desk lamp", Price: decimal.MustParse("19.99")}, nil)
	catalog.EXPECT().GetProduct(gomock.Any(), "p2").
		Return(&port.CatalogProduct{ID: "p2", Name: "Bulb", Price: decimal.MustParse("5.00")}, nil)

	s, err := service.NewOrderService(repo, catalog, "admin", zap.NewNop())
	require.NoError(t, err)

	order, err := s.CreateOrder(context.Background(), userID, []domain.CartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "44.98", order.TotalAmount.String())
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	stored, err := repo.ReadOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, "44.98", stored.TotalAmount.String())
	require.Len(t, stored.Lines, 2)
	assert.Equal(t, "p1", stored.Lines[0].ProductID)
	assert.Equal(t, int32(2), stored.Lines[0].Quantity)
	assert.Equal(t, "19.99", stored.Lines[0].PriceAtPurchase.String())
	assert.Equal(t, "p2", stored.Lines[1].ProductID)

	assert.Equal(t, ordersBefore+1, countRows(t, db, "orders"))
	assert.Equal(t, linesBefore+2, countRows(t, db, "order_items"))

	list, err := repo.ListOrdersByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestOrderDB_CreateOrderAbortOnMissingProduct(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	db, repo := getDeps(t)
	userID := uniqueUser("buyer")

	ordersBefore := countRows(t, db, "orders")
	linesBefore := countRows(t, db, "order_items")

	catalog := mock.NewMockCatalogClient(mockCtrl)
	catalog.EXPECT().GetProduct(gomock.Any(), "p1").
		Return(&port.CatalogProduct{ID: "p1", Name: "Desk lamp", Price: decimal.MustParse("19.99")}, nil)
	catalog.EXPECT().GetProduct(gomock.Any(), "ghost").
		Return(nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, "ghost"))

	s, err := service.NewOrderService(repo, catalog, "admin", zap.NewNop())
	require.NoError(t, err)

	_, err = s.CreateOrder(context.Background(), userID, []domain.CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Equal(t, ordersBefore, countRows(t, db, "orders"))
	assert.Equal(t, linesBefore, countRows(t, db, "order_items"))

	list, err := repo.ListOrdersByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// A line insert failing mid-transaction must roll back the header and
// every earlier line.
func TestOrderDB_NoPartialLinesOnConstraintViolation(t *testing.T) {
	db, repo := getDeps(t)
	userID := uniqueUser("buyer")

	ordersBefore := countRows(t, db, "orders")
	linesBefore := countRows(t, db, "order_items")

	_, err := repo.CreateOrder(context.Background(), userID,
		func(ctx context.Context) ([]domain.OrderLine, decimal.Decimal, error) {
			return []domain.OrderLine{
				{ProductID: "p1", Quantity: 1, PriceAtPurchase: decimal.MustParse("10.00")},
				{ProductID: "p2", Quantity: 0, PriceAtPurchase: decimal.MustParse("10.00")},
			}, decimal.MustParse("10.00"), nil
		})
	require.ErrorIs(t, err, domain.ErrInvalidCartItem)

	assert.Equal(t, ordersBefore, countRows(t, db, "orders"))
	assert.Equal(t, linesBefore, countRows(t, db, "order_items"))
}

func TestOrderDB_UpdateOrderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	_, repo := getDeps(t)
	userID := uniqueUser("buyer")

	catalog := mock.NewMockCatalogClient(mockCtrl)
	catalog.EXPECT().GetProduct(gomock.Any(), "p1").
		Return(&port.CatalogProduct{ID: "p1", Name: "Desk lamp", Price: decimal.MustParse("19.99")}, nil)

	s, err := service.NewOrderService(repo, catalog, "admin", zap.NewNop())
	require.NoError(t, err)

	order, err := s.CreateOrder(context.Background(), userID,
		[]domain.CartItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	updated, err := s.UpdateOrderStatus(context.Background(), order.ID, "Shipped")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	require.Len(t, updated.Lines, 1)

	stored, err := repo.ReadOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, stored.Status)

	_, err = s.UpdateOrderStatus(context.Background(), order.ID+1000000, "Cancelled")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}
