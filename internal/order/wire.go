//go:build wireinject
// +build wireinject

package order

import (
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/machbazar/storefront/internal/cart/store"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
	catalogcommand "github.com/machbazar/storefront/internal/catalog/usecase/command"
	"github.com/machbazar/storefront/internal/order/delivery/http"
	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/internal/order/repository"
	"github.com/machbazar/storefront/internal/order/usecase/command"
	"github.com/machbazar/storefront/internal/order/usecase/query"
	"github.com/machbazar/storefront/pkg/auth"
)

// ProvideOrderRepository provides the traced order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewOrderRepositoryWithTracing(repository.NewGormOrderRepository(db))
}

// Wire sets
var CommandSet = wire.NewSet(
	command.NewPlaceOrderHandler,
	command.NewVerifyPaymentHandler,
	command.NewExpireOrdersHandler,
)

var QuerySet = wire.NewSet(
	query.NewGetOrderHandler,
	query.NewGetOrderDetailHandler,
	query.NewListOrdersHandler,
	query.NewGetStatsHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	sessions *store.Sessions,
	products catalogdomain.ProductRepository,
	events command.EventPublisher,
	expireAfter time.Duration,
	tokens *auth.TokenService,
	reg prometheus.Registerer,
) *http.OrderHandler {
	wire.Build(
		ProvideOrderRepository,
		CommandSet,
		QuerySet,
		http.NewOrderHandler,
	)
	return nil
}

// InitializeApplyStockHandler builds the order.verified consumer
func InitializeApplyStockHandler(db *gorm.DB, sales *catalogcommand.RecordSaleHandler) *command.ApplyStockHandler {
	wire.Build(
		ProvideOrderRepository,
		command.NewApplyStockHandler,
	)
	return nil
}

// InitializeExpireOrdersHandler builds the scheduled expiry job
func InitializeExpireOrdersHandler(db *gorm.DB, expireAfter time.Duration) *command.ExpireOrdersHandler {
	wire.Build(
		ProvideOrderRepository,
		command.NewExpireOrdersHandler,
	)
	return nil
}
