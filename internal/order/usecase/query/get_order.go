package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/pkg/logger"
)

// OrderStatusView is what a shopper sees when looking up an order. The
// customer is reduced to a reference with a masked phone.
type OrderStatusView struct {
	OrderID       string             `json:"orderId"`
	Customer      domain.CustomerRef `json:"customer"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"paymentMethod"`
	Lines         []domain.OrderLine `json:"lines"`
	Subtotal      float64            `json:"subtotal"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
	CreatedAt     time.Time          `json:"createdAt"`
	VerifiedAt    *time.Time         `json:"verifiedAt,omitempty"`
}

// GetOrderQuery represents the query to look up an order
type GetOrderQuery struct {
	OrderID string
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	orders domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(orders domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderStatusView, error) {
	order, err := h.orders.FindByOrderID(ctx, query.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &OrderStatusView{
		OrderID:       order.OrderID,
		Customer:      trackingCustomer(order.Customer),
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Lines:         order.Lines,
		Subtotal:      order.Subtotal,
		Discount:      order.Discount,
		Total:         order.Total,
		CreatedAt:     order.CreatedAt,
		VerifiedAt:    order.VerifiedAt,
	}, nil
}

// trackingCustomer hides the contact behind a masked phone reference
func trackingCustomer(ref domain.CustomerRef) domain.CustomerRef {
	switch ref.Kind {
	case domain.CustomerReference, domain.CustomerPopulated:
		return domain.Reference(maskPhone(ref.ContactPhone()))
	default:
		return domain.CustomerRef{}
	}
}

// maskPhone keeps the operator prefix and last three digits
func maskPhone(phone string) string {
	if len(phone) <= 6 {
		return strings.Repeat("*", len(phone))
	}
	return phone[:3] + strings.Repeat("*", len(phone)-6) + phone[len(phone)-3:]
}

// GetOrderDetailHandler returns the full order, contact details included,
// for the admin console
type GetOrderDetailHandler struct {
	orders domain.OrderRepository
}

// NewGetOrderDetailHandler creates a new get order detail handler
func NewGetOrderDetailHandler(orders domain.OrderRepository) *GetOrderDetailHandler {
	return &GetOrderDetailHandler{orders: orders}
}

// Handle executes the get order detail query
func (h *GetOrderDetailHandler) Handle(ctx context.Context, query GetOrderQuery) (*domain.Order, error) {
	order, err := h.orders.FindByOrderID(ctx, query.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	switch order.Customer.Kind {
	case domain.CustomerPopulated:
	case domain.CustomerReference:
		customer, err := h.orders.FindCustomerByPhone(ctx, order.Customer.Phone)
		switch {
		case err == nil:
			order.Customer = domain.Populated(*customer)
		case errors.Is(err, domain.ErrNotFound):
			logger.Warn(ctx).Str("order_id", order.OrderID).Msg("Referenced customer has no populated order")
		default:
			return nil, fmt.Errorf("failed to resolve customer: %w", err)
		}
	default:
		logger.Warn(ctx).
			Str("order_id", order.OrderID).
			Str("customer_kind", string(order.Customer.Kind)).
			Msg("Order has an unknown customer kind")
	}
	return order, nil
}
