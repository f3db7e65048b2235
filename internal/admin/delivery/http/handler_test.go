package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machbazar/storefront/internal/admin/usecase/command"
	"github.com/machbazar/storefront/internal/admin/usecase/query"
	"github.com/machbazar/storefront/internal/catalog/catalogtest"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
	catalogquery "github.com/machbazar/storefront/internal/catalog/usecase/query"
	orderdomain "github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/internal/order/ordertest"
	orderquery "github.com/machbazar/storefront/internal/order/usecase/query"
	"github.com/machbazar/storefront/pkg/auth"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type fixture struct {
	router *mux.Router
	orders *ordertest.OrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := auth.HashPassword("ilish-2024")
	require.NoError(t, err)
	tokens := auth.NewTokenService("test-secret", time.Hour)

	products := catalogtest.NewProductRepository(
		catalogdomain.Product{ProductID: "rui", FishType: "carp", StockKg: 4, Published: true},
		catalogdomain.Product{ProductID: "chingri", FishType: "prawn", StockKg: 0},
	)
	orders := ordertest.NewOrderRepository(
		orderdomain.Order{OrderID: "MB-1", Status: orderdomain.StatusPendingVerification, Total: 900},
		orderdomain.Order{OrderID: "MB-2", Status: orderdomain.StatusVerified, Total: 1750},
	)

	h := NewAdminHandler(
		command.NewLoginHandler(command.Credentials{Username: "admin", PasswordHash: hash}, tokens),
		query.NewGetDashboardHandler(catalogquery.NewGetStatsHandler(products), orderquery.NewGetStatsHandler(orders)),
		tokens,
		prometheus.NewRegistry(),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &fixture{router: router, orders: orders}
}

func (f *fixture) do(t *testing.T, method, target, body, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()
	code, env := f.do(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"ilish-2024"}`, "")
	require.Equal(t, http.StatusOK, code, env.Error)
	var resp command.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp.Token
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	assert.NotEmpty(t, f.login(t))

	code, env := f.do(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"hilsa"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid username or password", env.Error)

	code, _ = f.do(t, http.MethodPost, "/api/admin/login", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	code, _ := f.do(t, http.MethodGet, "/api/admin/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	token := f.login(t)
	code, env := f.do(t, http.MethodGet, "/api/admin/dashboard", "", token)
	require.Equal(t, http.StatusOK, code)

	var dashboard query.Dashboard
	require.NoError(t, json.Unmarshal(env.Data, &dashboard))
	assert.Equal(t, int64(2), dashboard.Catalog.TotalProducts)
	assert.Equal(t, int64(1), dashboard.Catalog.OutOfStock)
	assert.Equal(t, int64(2), dashboard.Orders.TotalOrders)
	assert.Equal(t, 1750.0, dashboard.Orders.VerifiedRevenue)
	assert.Equal(t, int64(1), dashboard.PendingVerification)

	f.orders.Err = errors.New("db down")
	code, _ = f.do(t, http.MethodGet, "/api/admin/dashboard", "", token)
	assert.Equal(t, http.StatusInternalServerError, code)
}
