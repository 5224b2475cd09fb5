package repository

import (
	"context"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/pkg/kafka"
)

// KafkaPublisher publishes market events to a Kafka topic, keyed by symbol so
// per-symbol ordering survives partitioning.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

var _ drepo.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher wraps a producer for the given topic.
func NewKafkaPublisher(producer *kafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish sends the event to the configured topic.
func (p *KafkaPublisher) Publish(ctx context.Context, ev *models.MarketEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev)
}

// Close closes the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
