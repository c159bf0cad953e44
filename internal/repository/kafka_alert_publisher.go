package repository

import (
	"context"

	"PulseBoard/internal/domain/models"
	"PulseBoard/pkg/kafka"
)

// KafkaAlertPublisher streams created alerts to Kafka, keyed by symbol so
// consumers see per-symbol ordering. Publishing is best-effort; the caller
// logs failures and moves on.
type KafkaAlertPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaAlertPublisher(producer *kafka.Producer, topic string) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) PublishAlert(ctx context.Context, a *models.Alert) error {
	return p.producer.Publish(ctx, p.topic, []byte(a.Symbol), a)
}

func (p *KafkaAlertPublisher) Close() error {
	return p.producer.Close()
}
