package storage

import (
	"context"
	"encoding/json"

	"foodcourt-ordering/order-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher emits order status events keyed by customer id so the
// notification fan-out can partition per customer.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CustomerID),
		Value: payload,
	})
}
