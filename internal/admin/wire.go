//go:build wireinject
// +build wireinject

package admin

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/machbazar/storefront/internal/admin/delivery/http"
	"github.com/machbazar/storefront/internal/admin/usecase/command"
	"github.com/machbazar/storefront/internal/admin/usecase/query"
	"github.com/machbazar/storefront/internal/catalog"
	catalogquery "github.com/machbazar/storefront/internal/catalog/usecase/query"
	"github.com/machbazar/storefront/internal/order"
	orderquery "github.com/machbazar/storefront/internal/order/usecase/query"
	"github.com/machbazar/storefront/pkg/auth"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	creds command.Credentials,
	tokens *auth.TokenService,
	reg prometheus.Registerer,
) *http.AdminHandler {
	wire.Build(
		catalog.ProvideProductRepository,
		order.ProvideOrderRepository,
		catalogquery.NewGetStatsHandler,
		orderquery.NewGetStatsHandler,
		command.NewLoginHandler,
		query.NewGetDashboardHandler,
		http.NewAdminHandler,
	)
	return nil
}
