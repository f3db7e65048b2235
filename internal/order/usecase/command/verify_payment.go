package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/kafka"
	"github.com/machbazar/storefront/pkg/logger"
)

// VerifyPaymentCommand records the admin's decision on a pending order
type VerifyPaymentCommand struct {
	OrderID    string
	Approved   bool
	Note       string
	VerifiedBy string
}

// VerifyPaymentHandler handles verify payment command
type VerifyPaymentHandler struct {
	orders domain.OrderRepository
	events EventPublisher
	now    func() time.Time
}

// NewVerifyPaymentHandler creates a new verify payment handler
func NewVerifyPaymentHandler(orders domain.OrderRepository, events EventPublisher) *VerifyPaymentHandler {
	return &VerifyPaymentHandler{orders: orders, events: events, now: time.Now}
}

// Handle executes the verify payment command. Only pending orders can be
// decided, and only once.
func (h *VerifyPaymentHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) (*domain.Order, error) {
	to := domain.StatusRejected
	if cmd.Approved {
		to = domain.StatusVerified
	}

	err := h.orders.Transition(ctx, cmd.OrderID, domain.Transition{
		From: domain.StatusPendingVerification,
		To:   to,
		Note: strings.TrimSpace(cmd.Note),
		By:   cmd.VerifiedBy,
		At:   h.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify order %s: %w", cmd.OrderID, err)
	}

	order, err := h.orders.FindByOrderID(ctx, cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	logger.Info(ctx).
		Str("order_id", order.OrderID).
		Str("status", order.Status).
		Str("verified_by", cmd.VerifiedBy).
		Msg("Order payment verified")

	err = h.events.PublishOrderVerified(ctx, kafka.OrderVerifiedEvent{
		OrderID:    order.OrderID,
		Approved:   cmd.Approved,
		Status:     order.Status,
		VerifiedBy: cmd.VerifiedBy,
		Lines:      eventLines(order),
	})
	if err != nil {
		logger.Error(ctx).Err(err).Str("order_id", order.OrderID).Msg("Failed to publish order verified event")
	}

	return order, nil
}
