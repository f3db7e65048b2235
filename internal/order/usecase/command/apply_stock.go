package command

import (
	"context"
	"fmt"

	catalogcommand "github.com/machbazar/storefront/internal/catalog/usecase/command"
	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/kafka"
	"github.com/machbazar/storefront/pkg/logger"
)

// ApplyStockHandler decrements catalog stock for approved orders. Each order
// is applied at most once even if its event is delivered again, and a failed
// attempt leaves the order unflagged so a redelivery applies it.
type ApplyStockHandler struct {
	orders domain.OrderRepository
	sales  *catalogcommand.RecordSaleHandler
}

// NewApplyStockHandler creates a new apply stock handler
func NewApplyStockHandler(orders domain.OrderRepository, sales *catalogcommand.RecordSaleHandler) *ApplyStockHandler {
	return &ApplyStockHandler{orders: orders, sales: sales}
}

// HandleOrderVerified consumes order.verified events
func (h *ApplyStockHandler) HandleOrderVerified(ctx context.Context, event kafka.OrderVerifiedEvent) error {
	if !event.Approved {
		return nil
	}

	lines := make([]catalogcommand.SaleLine, 0, len(event.Lines))
	for _, l := range event.Lines {
		lines = append(lines, catalogcommand.SaleLine{ProductID: l.ProductID, QuantityKg: l.QuantityKg})
	}
	cmd := catalogcommand.RecordSaleCommand{OrderID: event.OrderID, Lines: lines}

	applied := 0
	marked, err := h.orders.ApplyStockOnce(ctx, event.OrderID, func(txCtx context.Context) error {
		n, err := h.sales.Record(txCtx, cmd)
		applied = n
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to apply stock for order %s: %w", event.OrderID, err)
	}
	if !marked {
		logger.Warn(ctx).Str("order_id", event.OrderID).Msg("Stock already applied or order not verified, skipping")
		return nil
	}
	if applied > 0 {
		h.sales.InvalidateCache(ctx)
	}

	logger.Info(ctx).
		Str("order_id", event.OrderID).
		Int("lines", applied).
		Msg("Stock applied for verified order")
	return nil
}
