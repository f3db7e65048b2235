package command

import (
	"context"
	"fmt"

	"github.com/machbazar/storefront/internal/catalog/domain"
)

// UpdateProductCommand replaces the editable fields of a product
type UpdateProductCommand struct {
	ProductID string
	ProductInput
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo  domain.ProductRepository
	cache domain.Invalidator
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, cache domain.Invalidator) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, cache: cache}
}

// Handle executes the update product command. The sale price is re-derived
// on save from the new base price and discount.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByProductID(ctx, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	if err := cmd.apply(product); err != nil {
		return nil, err
	}

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	h.cache.Invalidate(ctx)
	return product, nil
}
