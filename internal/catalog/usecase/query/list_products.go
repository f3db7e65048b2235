package query

import (
	"context"
	"fmt"

	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/pkg/logger"
)

const (
	DefaultLimit = 12
	MaxLimit     = 100
)

// ListProductsQuery represents the storefront catalog query
type ListProductsQuery struct {
	FishType    string
	FishSizeKg  string
	CuttingSize string
	Source      string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	InStock     bool
	SortBy      string
	Page        int
	Limit       int
}

// Pagination describes the returned page
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// ListProductsResult is one catalog page plus the filter sidebar data
type ListProductsResult struct {
	Products   []domain.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
	Filters    *domain.Facets   `json:"filters"`
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query. An empty result is a valid empty
// page. If facets cannot be loaded the page is still returned with empty
// filters.
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) (*ListProductsResult, error) {
	// Set defaults
	if query.Limit <= 0 {
		query.Limit = DefaultLimit
	}
	if query.Limit > MaxLimit {
		query.Limit = MaxLimit
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	filter := domain.ProductFilter{
		FishType:    query.FishType,
		FishSizeKg:  query.FishSizeKg,
		CuttingSize: query.CuttingSize,
		Source:      query.Source,
		Search:      query.Search,
		MinPrice:    query.MinPrice,
		MaxPrice:    query.MaxPrice,
		InStockOnly: query.InStock,
		Sort:        domain.ResolveSort(query.SortBy),
		Limit:       query.Limit,
		Offset:      (query.Page - 1) * query.Limit,
	}

	products, total, err := h.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	facets, err := h.repo.Facets(ctx)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to load catalog facets")
		facets = domain.EmptyFacets()
	}

	return &ListProductsResult{
		Products: products,
		Pagination: Pagination{
			Total:      total,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: TotalPages(total, query.Limit),
		},
		Filters: facets,
	}, nil
}

// TotalPages is ceil(total/limit), 0 for an empty result
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
