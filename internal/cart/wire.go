//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/machbazar/storefront/internal/cart/delivery/http"
	"github.com/machbazar/storefront/internal/cart/domain"
	"github.com/machbazar/storefront/internal/cart/store"
	"github.com/machbazar/storefront/internal/cart/usecase/command"
	"github.com/machbazar/storefront/internal/cart/usecase/query"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
)

// ProvideSessions provides the session cart opener over the configured slot store
func ProvideSessions(storage domain.Storage) *store.Sessions {
	return store.NewSessions(storage)
}

// Wire sets
var UsecaseSet = wire.NewSet(
	command.NewAddItemHandler,
	command.NewUpdateItemHandler,
	command.NewRemoveItemHandler,
	command.NewClearCartHandler,
	command.NewAddPackageHandler,
	query.NewGetCartHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	sessions *store.Sessions,
	products catalogdomain.ProductRepository,
	packages catalogdomain.PackageRepository,
	reg prometheus.Registerer,
) *http.CartHandler {
	wire.Build(
		UsecaseSet,
		http.NewCartHandler,
	)
	return nil
}
