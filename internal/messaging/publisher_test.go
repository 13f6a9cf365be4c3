package messaging

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/stylehub/internal/models"
)

func TestEncodeOrderPlaced(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	order := &models.Order{
		OrderID:       "ORD-1746360000000",
		PaymentMethod: "cod",
		Items:         models.Cart{{ID: "jeans-1", Name: "Slim Fit", Price: 3500, Size: "32", Quantity: 2}},
		OrderSummary:  models.OrderSummary{Subtotal: 7000, Shipping: 0, Tax: 350, Total: 7350},
	}

	msg, err := EncodeOrderPlaced(order, now)
	require.NoError(t, err)

	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, order.OrderID, msg.MessageId)
	assert.Equal(t, EventOrderPlaced, msg.Type)

	var event OrderEvent
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	assert.Equal(t, EventOrderPlaced, event.Type)
	assert.True(t, now.Equal(event.OccurredAt))
	assert.Equal(t, order.Items, event.Order.Items)
}
