//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/machbazar/storefront/internal/catalog/delivery/http"
	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/internal/catalog/repository"
	"github.com/machbazar/storefront/internal/catalog/usecase/command"
	"github.com/machbazar/storefront/internal/catalog/usecase/query"
	"github.com/machbazar/storefront/pkg/auth"
)

// ProvideProductRepository provides the traced product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewProductRepositoryWithTracing(repository.NewGormProductRepository(db))
}

// ProvidePackageRepository provides the traced package repository
func ProvidePackageRepository(db *gorm.DB) domain.PackageRepository {
	return repository.NewPackageRepositoryWithTracing(repository.NewGormPackageRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvidePackageRepository,
)

var CommandSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewUpdateStockHandler,
	command.NewSetPublishedHandler,
	command.NewCreatePackageHandler,
	command.NewUpdatePackageHandler,
	wire.Struct(new(http.Commands), "*"),
)

var QuerySet = wire.NewSet(
	query.NewListProductsHandler,
	query.NewGetProductHandler,
	query.NewListPackagesHandler,
	query.NewGetPackageHandler,
	query.NewQuotePackageHandler,
	query.NewGetStatsHandler,
	wire.Struct(new(http.Queries), "*"),
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	cache http.ResponseCache,
	invalidator domain.Invalidator,
	tokens *auth.TokenService,
	reg prometheus.Registerer,
) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		CommandSet,
		QuerySet,
		http.NewCatalogHandler,
	)
	return nil, nil
}

// InitializeRecordSaleHandler builds the handler that applies verified orders
// to stock and sales counters
func InitializeRecordSaleHandler(db *gorm.DB, invalidator domain.Invalidator) *command.RecordSaleHandler {
	wire.Build(
		ProvideProductRepository,
		command.NewRecordSaleHandler,
	)
	return nil
}
