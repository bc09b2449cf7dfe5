package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const headerEventType = "event-type"

// MessageWriter is the subset of *kafka.Writer the publisher needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher forwards domain events to Kafka. It subscribes to the bus as a
// wildcard handler and writes one message per event to "<prefix>.<aggregate>",
// keyed by aggregate id so events of one aggregate stay ordered.
type KafkaPublisher struct {
	writer      MessageWriter
	topicPrefix string
	logger      *zap.Logger
}

// NewKafkaWriter builds a writer for the configured brokers. Topics are chosen per message.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher creates a publisher over writer
func NewKafkaPublisher(writer MessageWriter, topicPrefix string, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPublisher{
		writer:      writer,
		topicPrefix: topicPrefix,
		logger:      logger,
	}
}

// Handle implements shared.EventHandler
func (p *KafkaPublisher) Handle(ctx context.Context, event shared.DomainEvent) error {
	msg, err := p.message(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", event.EventType(), err)
	}
	p.logger.Debug("event forwarded to kafka",
		zap.String("topic", msg.Topic),
		zap.String("event_type", event.EventType()),
	)
	return nil
}

// EventTypes returns nil so the publisher receives every event
func (p *KafkaPublisher) EventTypes() []string {
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Topic returns the topic an aggregate type publishes to
func (p *KafkaPublisher) Topic(aggregateType string) string {
	name := strings.ToLower(aggregateType)
	if p.topicPrefix == "" {
		return name
	}
	return p.topicPrefix + "." + name
}

func (p *KafkaPublisher) message(event shared.DomainEvent) (kafka.Message, error) {
	value, err := Encode(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Topic: p.Topic(event.AggregateType()),
		Key:   []byte(event.AggregateID().String()),
		Value: value,
		Time:  event.OccurredAt(),
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.EventType())},
		},
	}, nil
}

var _ shared.EventHandler = (*KafkaPublisher)(nil)
