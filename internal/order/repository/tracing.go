package repository

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/machbazar/storefront/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// OrderRepositoryWithTracing wraps an order repository with spans
type OrderRepositoryWithTracing struct {
	next domain.OrderRepository
}

// NewOrderRepositoryWithTracing creates a new repository with tracing
func NewOrderRepositoryWithTracing(next domain.OrderRepository) *OrderRepositoryWithTracing {
	return &OrderRepositoryWithTracing{next: next}
}

func (r *OrderRepositoryWithTracing) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Order.Create",
		trace.WithAttributes(
			attribute.String("order.id", order.OrderID),
			attribute.String("order.payment_method", order.PaymentMethod),
			attribute.Float64("order.total", order.Total),
			attribute.Int("order.lines", len(order.Lines)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, order)
	recordError(span, err)
	return err
}

func (r *OrderRepositoryWithTracing) FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.Order.FindByOrderID",
		trace.WithAttributes(attribute.String("order.id", orderID)),
	)
	defer span.End()

	order, err := r.next.FindByOrderID(ctx, orderID)
	recordError(span, err)
	return order, err
}

func (r *OrderRepositoryWithTracing) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Order.List",
		trace.WithAttributes(
			attribute.String("filter.status", filter.Status),
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	orders, total, err := r.next.List(ctx, filter)
	span.SetAttributes(attribute.Int64("result.total", total))
	recordError(span, err)
	return orders, total, err
}

func (r *OrderRepositoryWithTracing) Transition(ctx context.Context, orderID string, t domain.Transition) error {
	ctx, span := tracer.Start(ctx, "repository.Order.Transition",
		trace.WithAttributes(
			attribute.String("order.id", orderID),
			attribute.String("order.status.from", t.From),
			attribute.String("order.status.to", t.To),
		),
	)
	defer span.End()

	err := r.next.Transition(ctx, orderID, t)
	recordError(span, err)
	return err
}

func (r *OrderRepositoryWithTracing) ExpirePending(ctx context.Context, cutoff time.Time, at time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Order.ExpirePending",
		trace.WithAttributes(attribute.String("cutoff", cutoff.Format(time.RFC3339))),
	)
	defer span.End()

	n, err := r.next.ExpirePending(ctx, cutoff, at)
	span.SetAttributes(attribute.Int64("orders.expired", n))
	recordError(span, err)
	return n, err
}

func (r *OrderRepositoryWithTracing) ApplyStockOnce(ctx context.Context, orderID string, apply func(ctx context.Context) error) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.Order.ApplyStockOnce",
		trace.WithAttributes(attribute.String("order.id", orderID)),
	)
	defer span.End()

	ok, err := r.next.ApplyStockOnce(ctx, orderID, apply)
	span.SetAttributes(attribute.Bool("order.stock_applied", ok))
	recordError(span, err)
	return ok, err
}

func (r *OrderRepositoryWithTracing) FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	ctx, span := tracer.Start(ctx, "repository.Order.FindCustomerByPhone")
	defer span.End()

	customer, err := r.next.FindCustomerByPhone(ctx, phone)
	recordError(span, err)
	return customer, err
}

func (r *OrderRepositoryWithTracing) Stats(ctx context.Context) (*domain.OrderStats, error) {
	ctx, span := tracer.Start(ctx, "repository.Order.Stats")
	defer span.End()

	stats, err := r.next.Stats(ctx)
	recordError(span, err)
	return stats, err
}

func recordError(span trace.Span, err error) {
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
