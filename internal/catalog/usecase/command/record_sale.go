package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/machbazar/storefront/internal/catalog/domain"
	"github.com/machbazar/storefront/pkg/logger"
)

// SaleLine is one sold quantity of a catalog product
type SaleLine struct {
	ProductID  string
	QuantityKg float64
}

// RecordSaleCommand applies a verified order to stock
type RecordSaleCommand struct {
	OrderID string
	Lines   []SaleLine
}

// RecordSaleHandler decrements stock (clamped at zero) and bumps sold counts
type RecordSaleHandler struct {
	repo  domain.ProductRepository
	cache domain.Invalidator
}

// NewRecordSaleHandler creates a new record sale handler
func NewRecordSaleHandler(repo domain.ProductRepository, cache domain.Invalidator) *RecordSaleHandler {
	return &RecordSaleHandler{repo: repo, cache: cache}
}

// Handle applies every line and invalidates cached listings when stock
// changed
func (h *RecordSaleHandler) Handle(ctx context.Context, cmd RecordSaleCommand) error {
	applied, err := h.Record(ctx, cmd)
	if applied > 0 {
		h.cache.Invalidate(ctx)
	}
	return err
}

// Record applies every line without touching the cache and reports how many
// lines changed stock. Lines for products that no longer exist are logged and
// skipped; any other failure aborts. Callers running Record inside a
// transaction invalidate with InvalidateCache after commit.
func (h *RecordSaleHandler) Record(ctx context.Context, cmd RecordSaleCommand) (int, error) {
	applied := 0
	for _, line := range cmd.Lines {
		if line.QuantityKg <= 0 {
			continue
		}
		err := h.repo.RecordSale(ctx, line.ProductID, line.QuantityKg)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn(ctx).
				Str("order_id", cmd.OrderID).
				Str("product_id", line.ProductID).
				Msg("Sold product not in catalog, skipping stock update")
			continue
		}
		if err != nil {
			return applied, fmt.Errorf("failed to record sale of %s: %w", line.ProductID, err)
		}
		applied++
	}
	return applied, nil
}

// InvalidateCache drops cached catalog listings
func (h *RecordSaleHandler) InvalidateCache(ctx context.Context) {
	h.cache.Invalidate(ctx)
}
