package command

import (
	"context"
	"fmt"

	"github.com/machbazar/storefront/internal/catalog/domain"
)

// UpdateStockCommand represents the command to update product stock
type UpdateStockCommand struct {
	ProductID string
	StockKg   float64
}

// UpdateStockHandler handles stock update command
type UpdateStockHandler struct {
	repo  domain.ProductRepository
	cache domain.Invalidator
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(repo domain.ProductRepository, cache domain.Invalidator) *UpdateStockHandler {
	return &UpdateStockHandler{repo: repo, cache: cache}
}

// Handle executes the update stock command
func (h *UpdateStockHandler) Handle(ctx context.Context, cmd UpdateStockCommand) error {
	if cmd.StockKg < 0 {
		return &domain.ValidationError{Field: "stockKg", Message: "must not be negative"}
	}

	if err := h.repo.UpdateStock(ctx, cmd.ProductID, cmd.StockKg); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	h.cache.Invalidate(ctx)
	return nil
}

// SetPublishedCommand shows or hides a product on the storefront
type SetPublishedCommand struct {
	ProductID string
	Published bool
}

// SetPublishedHandler handles the publish toggle. Products are never deleted.
type SetPublishedHandler struct {
	repo  domain.ProductRepository
	cache domain.Invalidator
}

// NewSetPublishedHandler creates a new set published handler
func NewSetPublishedHandler(repo domain.ProductRepository, cache domain.Invalidator) *SetPublishedHandler {
	return &SetPublishedHandler{repo: repo, cache: cache}
}

func (h *SetPublishedHandler) Handle(ctx context.Context, cmd SetPublishedCommand) error {
	if err := h.repo.SetPublished(ctx, cmd.ProductID, cmd.Published); err != nil {
		return fmt.Errorf("failed to set published: %w", err)
	}

	h.cache.Invalidate(ctx)
	return nil
}
