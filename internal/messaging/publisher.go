// internal/messaging/publisher.go
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/models"
)

const EventOrderPlaced = "order.placed"

// OrderEvent is the message body published for every stored order.
type OrderEvent struct {
	Type       string        `json:"type"`
	OccurredAt time.Time     `json:"occurredAt"`
	Order      *models.Order `json:"order"`
}

type Publisher struct {
	pool      *ChannelPool
	queueName string
	timeout   time.Duration
}

func NewPublisher(pool *ChannelPool, queueName string) *Publisher {
	return &Publisher{
		pool:      pool,
		queueName: queueName,
		timeout:   5 * time.Second,
	}
}

// EncodeOrderPlaced builds the persistent message for an order.
func EncodeOrderPlaced(order *models.Order, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(OrderEvent{
		Type:       EventOrderPlaced,
		OccurredAt: now.UTC(),
		Order:      order,
	})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal order event: %w", err)
	}

	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    order.OrderID,
		Type:         EventOrderPlaced,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	msg, err := EncodeOrderPlaced(order, time.Now())
	if err != nil {
		return err
	}

	ch, err := p.pool.Get()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.Put(ch)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// default exchange routes by queue name
	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.OrderID,
		"queue":    p.queueName,
	}).Info("Published order event")
	return nil
}
