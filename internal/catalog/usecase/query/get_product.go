package query

import (
	"context"
	"fmt"

	"github.com/machbazar/storefront/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by slug
type GetProductQuery struct {
	Slug string
	// IncludeUnpublished is set for admin lookups
	IncludeUnpublished bool
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, query GetProductQuery) (*domain.Product, error) {
	if query.Slug == "" {
		return nil, fmt.Errorf("invalid product slug")
	}

	product, err := h.repo.FindBySlug(ctx, query.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if !product.Published && !query.IncludeUnpublished {
		return nil, fmt.Errorf("failed to get product: %w", domain.ErrNotFound)
	}

	return product, nil
}
