package kafka

import "time"

// EventLine is one product quantity carried by an order event. Customized
// packages are already expanded into their component products.
type EventLine struct {
	ProductID  string  `json:"product_id"`
	QuantityKg float64 `json:"quantity_kg"`
}

// OrderPlacedEvent is published when a checkout creates an order
type OrderPlacedEvent struct {
	EventID       string      `json:"event_id"`
	EventType     string      `json:"event_type"`
	OrderID       string      `json:"order_id"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"payment_method"`
	Lines         []EventLine `json:"lines"`
	Timestamp     time.Time   `json:"timestamp"`
}

// OrderVerifiedEvent is published when an admin approves or rejects payment
type OrderVerifiedEvent struct {
	EventID    string      `json:"event_id"`
	EventType  string      `json:"event_type"`
	OrderID    string      `json:"order_id"`
	Approved   bool        `json:"approved"`
	Status     string      `json:"status"`
	VerifiedBy string      `json:"verified_by"`
	Lines      []EventLine `json:"lines"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced   = "order.placed"
	EventTypeOrderVerified = "order.verified"
)

// Kafka topics
const (
	TopicOrderPlaced   = "order-placed"
	TopicOrderVerified = "order-verified"
)

// Topics lists every topic the storefront consumes
var Topics = []string{TopicOrderPlaced, TopicOrderVerified}
