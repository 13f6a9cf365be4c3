// internal/services/order_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/i18n"
	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/pricing"
	"github.com/javajoker/stylehub/internal/utils"
)

// OrderStore persists placed orders.
type OrderStore interface {
	Save(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, orderID string) (*models.Order, error)
}

// OrderPublisher announces placed orders.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *models.Order) error
}

type OrderService struct {
	store     OrderStore
	publisher OrderPublisher
	now       func() time.Time
}

// NewOrderService accepts a nil publisher when no broker is configured.
func NewOrderService(store OrderStore, publisher OrderPublisher) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateOrder validates and stores an order submitted by the storefront.
// The summary must equal the one derived from the items.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Notes == "" {
		order.Notes = "None"
	}
	if order.Timestamp.IsZero() {
		order.Timestamp = s.now().UTC()
	}
	order.PaymentMethod = strings.ToLower(strings.TrimSpace(order.PaymentMethod))

	if err := utils.NewValidationError(utils.ValidateStruct(order)); err != nil {
		return nil, err
	}

	expected := pricing.Compute(order.Items)
	if !pricing.Equal(expected, order.OrderSummary) {
		return nil, &utils.ValidationError{
			Message: i18n.T(i18n.LanguageFromContext(ctx), i18n.KeyOrderSummaryMismatch),
			Fields: []utils.FieldError{{
				Field:   "orderSummary",
				Tag:     "mismatch",
				Message: fmt.Sprintf("expected total %.2f, got %.2f", expected.Total, order.OrderSummary.Total),
			}},
		}
	}

	if err := s.store.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order %s: %w", order.OrderID, err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.OrderID,
		"items":    order.Items.Count(),
		"total":    order.OrderSummary.Total,
	}).Info("Order stored")

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
			logrus.WithError(err).WithField("order_id", order.OrderID).Warn("Failed to publish order event")
		}
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.store.Get(ctx, strings.TrimSpace(orderID))
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return order, nil
}
