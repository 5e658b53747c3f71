package service

import (
	"context"
	"encoding/json"

	"foodcourt-ordering/notify-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Deliverer routes an order event towards the customer's open connections.
type Deliverer interface {
	Deliver(event domain.OrderEvent)
}

type Consumer struct {
	Reader *kafka.Reader
	Hub    Deliverer
	Logger *logrus.Logger
}

func NewConsumer(reader *kafka.Reader, hub Deliverer, logger *logrus.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Hub:    hub,
		Logger: logger,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("Starting notification consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.Logger.WithError(err).Error("Error reading message")
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Logger.WithError(err).Error("Error unmarshaling event")
			continue
		}

		c.Process(event)
	}
}

func (c *Consumer) Process(event domain.OrderEvent) {
	if event.Type != domain.EventOrderStatus {
		return
	}
	c.Logger.WithFields(logrus.Fields{
		"order_id":    event.OrderID,
		"customer_id": event.CustomerID,
		"status":      event.Status,
	}).Info("Routing order event")
	c.Hub.Deliver(event)
}
