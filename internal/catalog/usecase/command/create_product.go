package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/machbazar/storefront/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	ProductID string
	ProductInput
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo  domain.ProductRepository
	cache domain.Invalidator
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, cache domain.Invalidator) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, cache: cache}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	product := &domain.Product{ProductID: strings.TrimSpace(cmd.ProductID)}

	err := cmd.apply(product)
	if product.ProductID == "" {
		errs, _ := domain.AsValidation(err)
		errs.Add("productId", "is required")
		err = errs
	}
	if err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	h.cache.Invalidate(ctx)
	return product, nil
}
