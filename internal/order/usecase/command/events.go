package command

import (
	"context"

	"github.com/machbazar/storefront/internal/order/domain"
	"github.com/machbazar/storefront/kafka"
)

// EventPublisher publishes order lifecycle events
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error
	PublishOrderVerified(ctx context.Context, event kafka.OrderVerifiedEvent) error
}

func eventLines(o *domain.Order) []kafka.EventLine {
	stock := o.StockLines()
	lines := make([]kafka.EventLine, 0, len(stock))
	for _, l := range stock {
		lines = append(lines, kafka.EventLine{ProductID: l.ProductID, QuantityKg: l.QuantityKg})
	}
	return lines
}
