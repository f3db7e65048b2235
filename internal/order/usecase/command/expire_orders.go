package command

import (
	"context"
	"fmt"
	"time"

	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/pkg/logger"
)

// ExpireOrdersHandler expires mobile-payment orders nobody verified in time
type ExpireOrdersHandler struct {
	orders domain.OrderRepository
	after  time.Duration
	now    func() time.Time
}

// NewExpireOrdersHandler creates a handler expiring orders older than after
func NewExpireOrdersHandler(orders domain.OrderRepository, after time.Duration) *ExpireOrdersHandler {
	return &ExpireOrdersHandler{orders: orders, after: after, now: time.Now}
}

// Handle runs one expiry pass and returns the number of expired orders
func (h *ExpireOrdersHandler) Handle(ctx context.Context) (int64, error) {
	now := h.now()
	n, err := h.orders.ExpirePending(ctx, now.Add(-h.after), now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire orders: %w", err)
	}
	if n > 0 {
		logger.Info(ctx).Int64("expired", n).Dur("after", h.after).Msg("Expired unverified orders")
	}
	return n, nil
}

// Run adapts Handle to a cron job
func (h *ExpireOrdersHandler) Run() {
	ctx := context.Background()
	if _, err := h.Handle(ctx); err != nil {
		logger.Error(ctx).Err(err).Msg("Order expiry run failed")
	}
}
