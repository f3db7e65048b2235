package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/machbazar/storefront/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	now      func() time.Time
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer, now: time.Now}
}

// PublishOrderPlaced publishes an order placed event with tracing
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	if event.EventID == "" {
		event.EventID = newEventID()
	}
	event.EventType = EventTypeOrderPlaced
	event.Timestamp = p.now()

	return p.publish(ctx, TopicOrderPlaced, event.EventType, event.EventID, event.OrderID, event)
}

// PublishOrderVerified publishes an order verified event with tracing
func (p *Publisher) PublishOrderVerified(ctx context.Context, event OrderVerifiedEvent) error {
	if event.EventID == "" {
		event.EventID = newEventID()
	}
	event.EventType = EventTypeOrderVerified
	event.Timestamp = p.now()

	return p.publish(ctx, TopicOrderVerified, event.EventType, event.EventID, event.OrderID, event)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, eventID, orderID string, event interface{}) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
			attribute.String("order.id", orderID),
		),
	)
	defer span.End()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	// Keyed by order so all events of one order stay in one partition
	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(orderID),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Error(ctx).
			Err(err).
			Str("topic", topic).
			Str("order_id", orderID).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Info(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("order_id", orderID).
		Msg("Order event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// InProcessPublisher hands events straight to a Dispatcher. It stands in
// for Kafka when no broker is configured.
type InProcessPublisher struct {
	dispatcher *Dispatcher
	now        func() time.Time
}

// NewInProcessPublisher creates a publisher that hands events straight to dispatcher
func NewInProcessPublisher(dispatcher *Dispatcher) *InProcessPublisher {
	return &InProcessPublisher{dispatcher: dispatcher, now: time.Now}
}

func (p *InProcessPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	if event.EventID == "" {
		event.EventID = newEventID()
	}
	event.EventType = EventTypeOrderPlaced
	event.Timestamp = p.now()
	return p.dispatch(ctx, event.EventType, event)
}

func (p *InProcessPublisher) PublishOrderVerified(ctx context.Context, event OrderVerifiedEvent) error {
	if event.EventID == "" {
		event.EventID = newEventID()
	}
	event.EventType = EventTypeOrderVerified
	event.Timestamp = p.now()
	return p.dispatch(ctx, event.EventType, event)
}

func (p *InProcessPublisher) dispatch(ctx context.Context, eventType string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.dispatcher.Dispatch(ctx, eventType, payload)
}

func newEventID() string {
	return "evt_" + uuid.NewString()
}
