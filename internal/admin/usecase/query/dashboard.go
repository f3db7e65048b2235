package query

import (
	"context"
	"fmt"

	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
	catalogquery "github.com/machbazar/storefront/internal/catalog/usecase/query"
	orderdomain "github.com/machbazar/storefront/internal/order/domain"
	orderquery "github.com/machbazar/storefront/internal/order/usecase/query"
)

// Dashboard is the admin landing summary
type Dashboard struct {
	Catalog *catalogdomain.ProductStats `json:"catalog"`
	Orders  *orderdomain.OrderStats     `json:"orders"`
	// Orders whose payment still needs a manual check
	PendingVerification int64 `json:"pendingVerification"`
}

// GetDashboardHandler handles get dashboard query
type GetDashboardHandler struct {
	catalogStats *catalogquery.GetStatsHandler
	orderStats   *orderquery.GetStatsHandler
}

// NewGetDashboardHandler creates a new get dashboard handler
func NewGetDashboardHandler(catalogStats *catalogquery.GetStatsHandler, orderStats *orderquery.GetStatsHandler) *GetDashboardHandler {
	return &GetDashboardHandler{catalogStats: catalogStats, orderStats: orderStats}
}

// Handle executes the get dashboard query
func (h *GetDashboardHandler) Handle(ctx context.Context) (*Dashboard, error) {
	catalog, err := h.catalogStats.Handle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog stats: %w", err)
	}
	orders, err := h.orderStats.Handle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order stats: %w", err)
	}

	return &Dashboard{
		Catalog:             catalog,
		Orders:              orders,
		PendingVerification: orders.ByStatus[orderdomain.StatusPendingVerification],
	}, nil
}
