package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"vigil/internal/payments/models"
	"vigil/internal/platform/kafka/producer"
)

// KafkaPublisher publishes screening outcomes to the results topic, keyed by
// payment ID so per-payment ordering survives repartitioning.
type KafkaPublisher struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaPublisher(p *producer.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: p, topic: topic}
}

func (p *KafkaPublisher) PublishOutcome(ctx context.Context, outcome *models.ScreeningOutcome) error {
	value, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode screening outcome: %w", err)
	}
	return p.producer.Produce(ctx, p.topic, []byte(outcome.PaymentID), value)
}
