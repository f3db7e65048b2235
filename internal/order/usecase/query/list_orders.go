package query

import (
	"context"
	"fmt"
	"slices"

	catalogquery "github.com/machbazar/storefront/internal/catalog/usecase/query"
	"github.com/machbazar/storefront/internal/order/domain"
)

const DefaultLimit = 20

// ListOrdersQuery represents the admin order listing
type ListOrdersQuery struct {
	Status string
	Page   int
	Limit  int
}

// ListOrdersResult is one page of orders, newest first
type ListOrdersResult struct {
	Orders     []domain.Order          `json:"orders"`
	Pagination catalogquery.Pagination `json:"pagination"`
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	orders domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(orders domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{orders: orders}
}

// Handle executes the list orders query. Unknown statuses are ignored.
func (h *ListOrdersHandler) Handle(ctx context.Context, query ListOrdersQuery) (*ListOrdersResult, error) {
	if query.Limit <= 0 {
		query.Limit = DefaultLimit
	}
	if query.Limit > catalogquery.MaxLimit {
		query.Limit = catalogquery.MaxLimit
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if !slices.Contains(domain.Statuses, query.Status) {
		query.Status = ""
	}

	orders, total, err := h.orders.List(ctx, domain.OrderFilter{
		Status: query.Status,
		Limit:  query.Limit,
		Offset: (query.Page - 1) * query.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &ListOrdersResult{
		Orders: orders,
		Pagination: catalogquery.Pagination{
			Total:      total,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: catalogquery.TotalPages(total, query.Limit),
		},
	}, nil
}

// GetStatsHandler handles get order stats query
type GetStatsHandler struct {
	orders domain.OrderRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(orders domain.OrderRepository) *GetStatsHandler {
	return &GetStatsHandler{orders: orders}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context) (*domain.OrderStats, error) {
	stats, err := h.orders.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get order stats: %w", err)
	}
	return stats, nil
}
