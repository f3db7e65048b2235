package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/internal/order/ordertest"
)

func seedOrders() *ordertest.OrderRepository {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return ordertest.NewOrderRepository(
		domain.Order{OrderID: "MB-1", Status: domain.StatusPendingVerification, Total: 900, CreatedAt: base,
			Customer: domain.Populated(domain.Customer{Name: "Rahim", Phone: "01712345678", Address: "Dhanmondi"})},
		domain.Order{OrderID: "MB-2", Status: domain.StatusVerified, Total: 1750, CreatedAt: base.Add(time.Hour)},
		domain.Order{OrderID: "MB-3", Status: domain.StatusVerified, Total: 250, CreatedAt: base.Add(2 * time.Hour)},
		domain.Order{OrderID: "MB-4", Status: domain.StatusRejected, Total: 400, CreatedAt: base.Add(3 * time.Hour)},
	)
}

func TestGetOrder(t *testing.T) {
	h := NewGetOrderHandler(seedOrders())

	view, err := h.Handle(context.Background(), GetOrderQuery{OrderID: "MB-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingVerification, view.Status)
	assert.Equal(t, 900.0, view.Total)

	_, err = h.Handle(context.Background(), GetOrderQuery{OrderID: "MB-9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	h := NewListOrdersHandler(seedOrders())

	res, err := h.Handle(context.Background(), ListOrdersQuery{Status: domain.StatusVerified, Limit: 1})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, "MB-3", res.Orders[0].OrderID)
	assert.Equal(t, int64(2), res.Pagination.Total)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.Equal(t, 1, res.Pagination.Page)
}

func TestListOrders_UnknownStatusListsAll(t *testing.T) {
	h := NewListOrdersHandler(seedOrders())

	res, err := h.Handle(context.Background(), ListOrdersQuery{Status: "shipped", Page: -3})
	require.NoError(t, err)
	assert.Len(t, res.Orders, 4)
	assert.Equal(t, DefaultLimit, res.Pagination.Limit)
	assert.Equal(t, "MB-4", res.Orders[0].OrderID)
}

func TestGetStats(t *testing.T) {
	repo := seedOrders()
	h := NewGetStatsHandler(repo)

	stats, err := h.Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.ByStatus[domain.StatusVerified])
	assert.Equal(t, int64(0), stats.ByStatus[domain.StatusExpired])
	assert.Equal(t, 2000.0, stats.VerifiedRevenue)

	repo.Err = errors.New("db down")
	_, err = h.Handle(context.Background())
	assert.Error(t, err)
}

func TestGetOrder_MasksCustomer(t *testing.T) {
	view, err := NewGetOrderHandler(seedOrders()).Handle(context.Background(), GetOrderQuery{OrderID: "MB-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.Reference("017*****678"), view.Customer)
}

func TestGetOrderDetail_ResolvesReference(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := ordertest.NewOrderRepository(
		domain.Order{OrderID: "MB-1", CreatedAt: base,
			Customer: domain.Populated(domain.Customer{Name: "Rahim", Phone: "01712345678", Address: "Dhanmondi"})},
		domain.Order{OrderID: "MB-2", CreatedAt: base.Add(time.Hour),
			Customer: domain.Populated(domain.Customer{Name: "Rahim", Phone: "01712345678", Address: "Gulshan"})},
		domain.Order{OrderID: "MB-3", CreatedAt: base.Add(2 * time.Hour), Customer: domain.Reference("01712345678")},
		domain.Order{OrderID: "MB-4", CreatedAt: base.Add(3 * time.Hour), Customer: domain.Reference("01899999999")},
	)
	h := NewGetOrderDetailHandler(repo)

	order, err := h.Handle(context.Background(), GetOrderQuery{OrderID: "MB-3"})
	require.NoError(t, err)
	require.Equal(t, domain.CustomerPopulated, order.Customer.Kind)
	assert.Equal(t, "Gulshan", order.Customer.Customer.Address, "newest contact wins")

	order, err = h.Handle(context.Background(), GetOrderQuery{OrderID: "MB-4"})
	require.NoError(t, err)
	assert.Equal(t, domain.Reference("01899999999"), order.Customer, "unresolved references stay as they are")

	repo.Err = errors.New("db down")
	_, err = h.Handle(context.Background(), GetOrderQuery{OrderID: "MB-3"})
	assert.Error(t, err)
}
