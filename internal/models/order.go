// internal/models/order.go
package models

import (
	"time"
)

// OrderIDPrefix tags every generated order id.
const OrderIDPrefix = "ORD-"

type Customer struct {
	FullName string `json:"fullName" dynamodbav:"fullName" validate:"required,not_blank"`
	Email    string `json:"email" dynamodbav:"email" validate:"required,email"`
	Phone    string `json:"phone" dynamodbav:"phone" validate:"required,not_blank"`
}

type ShippingAddress struct {
	Address    string `json:"address" dynamodbav:"address" validate:"required,not_blank"`
	City       string `json:"city" dynamodbav:"city" validate:"required,not_blank"`
	State      string `json:"state,omitempty" dynamodbav:"state,omitempty"`
	PostalCode string `json:"postalCode" dynamodbav:"postalCode" validate:"required,not_blank"`
	Country    string `json:"country" dynamodbav:"country" validate:"required,not_blank"`
}

// OrderSummary is derived from cart items; see pricing.Compute.
type OrderSummary struct {
	Subtotal float64 `json:"subtotal" dynamodbav:"subtotal"`
	Shipping float64 `json:"shipping" dynamodbav:"shipping"`
	Tax      float64 `json:"tax" dynamodbav:"tax"`
	Total    float64 `json:"total" dynamodbav:"total"`
}

// FreeShipping reports whether the shipping charge was waived.
func (s OrderSummary) FreeShipping() bool {
	return s.Shipping == 0
}

type Order struct {
	OrderID         string          `json:"orderId" dynamodbav:"orderId" validate:"required,startswith=ORD-"`
	Timestamp       time.Time       `json:"timestamp" dynamodbav:"timestamp"`
	Customer        Customer        `json:"customer" dynamodbav:"customer"`
	ShippingAddress ShippingAddress `json:"shippingAddress" dynamodbav:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" dynamodbav:"paymentMethod" validate:"required,not_blank"`
	Notes           string          `json:"notes" dynamodbav:"notes"`
	Items           Cart            `json:"items" dynamodbav:"items" validate:"required,min=1,dive"`
	OrderSummary    OrderSummary    `json:"orderSummary" dynamodbav:"orderSummary"`
}

// OrderRecord is the PostgreSQL row for an order. Nested parts of the order
// live in Payload.
type OrderRecord struct {
	OrderID       string    `gorm:"primaryKey;size:64"`
	PlacedAt      time.Time `gorm:"index"`
	CustomerEmail string    `gorm:"size:255;index"`
	PaymentMethod string    `gorm:"size:50"`
	Total         float64   `gorm:"type:decimal(12,2)"`
	Payload       JSONB     `gorm:"type:jsonb"`
	CreatedAt     time.Time
}

func (OrderRecord) TableName() string {
	return "orders"
}

// NewOrderRecord flattens an order into its table row.
func NewOrderRecord(order *Order) (*OrderRecord, error) {
	payload, err := ToJSONB(order)
	if err != nil {
		return nil, err
	}
	return &OrderRecord{
		OrderID:       order.OrderID,
		PlacedAt:      order.Timestamp,
		CustomerEmail: order.Customer.Email,
		PaymentMethod: order.PaymentMethod,
		Total:         order.OrderSummary.Total,
		Payload:       payload,
	}, nil
}

// Order rebuilds the order stored in the row.
func (r *OrderRecord) Order() (*Order, error) {
	var order Order
	if err := r.Payload.Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}
