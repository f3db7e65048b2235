package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/machbazar/storefront/pkg/logger"
)

// EventHandler handles the raw JSON payload of one event
type EventHandler func(ctx context.Context, payload []byte) error

// OrderPlacedHandler adapts a typed order.placed handler
func OrderPlacedHandler(fn func(ctx context.Context, event OrderPlacedEvent) error) EventHandler {
	return func(ctx context.Context, payload []byte) error {
		var event OrderPlacedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}
		return fn(ctx, event)
	}
}

// OrderVerifiedHandler adapts a typed order.verified handler
func OrderVerifiedHandler(fn func(ctx context.Context, event OrderVerifiedEvent) error) EventHandler {
	return func(ctx context.Context, payload []byte) error {
		var event OrderVerifiedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}
		return fn(ctx, event)
	}
}

// Dispatcher routes events to handlers by event type
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]EventHandler
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]EventHandler)}
}

// RegisterHandler registers an event handler for a specific event type
func (d *Dispatcher) RegisterHandler(eventType string, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = handler
	logger.Logger.Info().
		Str("event_type", eventType).
		Msg("Event handler registered")
}

// Dispatch runs the handler for eventType. Events nobody handles are
// ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, eventType string, payload []byte) error {
	d.mu.RLock()
	handler, ok := d.handlers[eventType]
	d.mu.RUnlock()

	if !ok {
		logger.Debug(ctx).Str("event_type", eventType).Msg("No handler registered for event type")
		return nil
	}
	return handler(ctx, payload)
}
