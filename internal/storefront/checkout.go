// internal/storefront/checkout.go
package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/pricing"
	"github.com/javajoker/stylehub/internal/utils"
)

var (
	ErrCartEmpty         = errors.New("cart empty")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

type CheckoutState int

const (
	StateIdle CheckoutState = iota
	StateFormOpen
	StateSubmitted
	StateConfirmed
	StateCleared
)

func (s CheckoutState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFormOpen:
		return "form-open"
	case StateSubmitted:
		return "submitted"
	case StateConfirmed:
		return "confirmed"
	case StateCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// CheckoutForm is what the shopper types in. State and Notes are optional.
type CheckoutForm struct {
	FullName      string `json:"fullName" validate:"required,not_blank"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,not_blank"`
	Address       string `json:"address" validate:"required,not_blank"`
	City          string `json:"city" validate:"required,not_blank"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode" validate:"required,not_blank"`
	Country       string `json:"country" validate:"required,not_blank"`
	PaymentMethod string `json:"paymentMethod" validate:"required,not_blank"`
	Notes         string `json:"notes"`
}

// OrderSubmitter transmits a placed order to the backend.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order *models.Order) error
}

// OrderIDGenerator issues "ORD-<unix millis>" ids that strictly increase
// even when the clock stalls or steps back.
type OrderIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewOrderIDGenerator() *OrderIDGenerator {
	return &OrderIDGenerator{now: time.Now}
}

func (g *OrderIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return models.OrderIDPrefix + strconv.FormatInt(ms, 10)
}

// Checkout walks one order from form to confirmation:
// idle -> form-open -> submitted -> confirmed -> cleared.
type Checkout struct {
	mu        sync.Mutex
	cart      *CartStore
	storage   Storage
	submitter OrderSubmitter
	ids       *OrderIDGenerator
	now       func() time.Time

	state CheckoutState
	order *models.Order
}

func NewCheckout(cart *CartStore, storage Storage, submitter OrderSubmitter, ids *OrderIDGenerator) *Checkout {
	if ids == nil {
		ids = NewOrderIDGenerator()
	}
	return &Checkout{
		cart:      cart,
		storage:   storage,
		submitter: submitter,
		ids:       ids,
		now:       time.Now,
		state:     StateIdle,
	}
}

func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Order returns the submitted snapshot, or nil before Submit.
func (c *Checkout) Order() *models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return nil
	}
	return cloneOrder(c.order)
}

func (c *Checkout) transitionError(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, c.state)
}

// Open shows the form. An empty cart never reaches the form.
func (c *Checkout) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return c.transitionError("open")
	}
	if c.cart.IsEmpty() {
		return ErrCartEmpty
	}
	c.state = StateFormOpen
	return nil
}

func (c *Checkout) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFormOpen {
		return c.transitionError("cancel")
	}
	c.state = StateIdle
	return nil
}

// Submit validates the form and freezes the order. The summary is computed
// once from the frozen items.
func (c *Checkout) Submit(form CheckoutForm) (*models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFormOpen {
		return nil, c.transitionError("submit")
	}
	if err := utils.NewValidationError(utils.ValidateStruct(form)); err != nil {
		return nil, err
	}

	items := c.cart.Items()
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	notes := strings.TrimSpace(form.Notes)
	if notes == "" {
		notes = "None"
	}

	order := &models.Order{
		OrderID:   c.ids.Next(),
		Timestamp: c.now().UTC(),
		Customer: models.Customer{
			FullName: strings.TrimSpace(form.FullName),
			Email:    strings.TrimSpace(form.Email),
			Phone:    strings.TrimSpace(form.Phone),
		},
		ShippingAddress: models.ShippingAddress{
			Address:    strings.TrimSpace(form.Address),
			City:       strings.TrimSpace(form.City),
			State:      strings.TrimSpace(form.State),
			PostalCode: strings.TrimSpace(form.PostalCode),
			Country:    strings.TrimSpace(form.Country),
		},
		PaymentMethod: strings.ToLower(strings.TrimSpace(form.PaymentMethod)),
		Notes:         notes,
		Items:         items,
		OrderSummary:  pricing.Compute(items),
	}

	if err := c.savePending(order); err != nil {
		return nil, err
	}

	c.order = order
	c.state = StateSubmitted

	logrus.WithFields(logrus.Fields{
		"order_id": order.OrderID,
		"total":    order.OrderSummary.Total,
	}).Debug("Order submitted")

	return cloneOrder(order), nil
}

// Resume picks up an order that was submitted by an earlier run but never
// cleared. It only applies while idle and when the saved order still
// matches the cart; a stale order is discarded.
func (c *Checkout) Resume() (*models.Order, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return nil, false, c.transitionError("resume")
	}

	order, err := loadOrder(c.storage, models.PendingOrderStorageKey)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(order.Items) == 0 || !order.Items.Equal(c.cart.Items()) {
		logrus.WithField("order_id", order.OrderID).Info("Discarding pending order, cart has changed")
		if err := c.storage.Delete(models.PendingOrderStorageKey); err != nil {
			return nil, false, &utils.PersistenceError{Key: models.PendingOrderStorageKey, Err: err}
		}
		return nil, false, nil
	}

	c.order = order
	c.state = StateSubmitted
	return cloneOrder(order), true, nil
}

// Confirm sends the submitted order to the backend and records it as the
// last order. On failure the checkout stays submitted and may be retried;
// the cart is not touched.
func (c *Checkout) Confirm(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSubmitted {
		return c.transitionError("confirm")
	}

	if err := c.submitter.SubmitOrder(ctx, c.order); err != nil {
		switch {
		case errors.Is(err, utils.ErrConflict):
			// An earlier attempt reached the backend; its response was lost.
			logrus.WithField("order_id", c.order.OrderID).Info("Order already stored by backend")
		case utils.IsBackend(err), utils.IsValidation(err):
			return err
		default:
			return utils.Backend("submit order", err)
		}
	}

	data, err := json.Marshal(c.order)
	if err != nil {
		return &utils.PersistenceError{Key: models.LastOrderStorageKey, Err: err}
	}
	if err := c.storage.Set(models.LastOrderStorageKey, data); err != nil {
		return &utils.PersistenceError{Key: models.LastOrderStorageKey, Err: err}
	}

	c.state = StateConfirmed
	return nil
}

// Clear empties the cart after a confirmed order. Nothing leaves the
// cleared state.
func (c *Checkout) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConfirmed {
		return c.transitionError("clear")
	}
	if err := c.storage.Delete(models.PendingOrderStorageKey); err != nil {
		return &utils.PersistenceError{Key: models.PendingOrderStorageKey, Err: err}
	}
	if err := c.cart.Clear(); err != nil {
		return err
	}
	c.state = StateCleared
	return nil
}

// LastOrder reads back the most recently confirmed order.
func (c *Checkout) LastOrder() (*models.Order, error) {
	return LoadLastOrder(c.storage)
}

// LoadLastOrder returns utils.ErrNotFound when no order was confirmed yet.
func LoadLastOrder(storage Storage) (*models.Order, error) {
	return loadOrder(storage, models.LastOrderStorageKey)
}

func loadOrder(storage Storage, key string) (*models.Order, error) {
	data, err := storage.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, &utils.PersistenceError{Key: key, Err: err}
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, &utils.PersistenceError{Key: key, Err: err}
	}
	return &order, nil
}

func (c *Checkout) savePending(order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return &utils.PersistenceError{Key: models.PendingOrderStorageKey, Err: err}
	}
	if err := c.storage.Set(models.PendingOrderStorageKey, data); err != nil {
		return &utils.PersistenceError{Key: models.PendingOrderStorageKey, Err: err}
	}
	return nil
}

func cloneOrder(o *models.Order) *models.Order {
	out := *o
	out.Items = o.Items.Clone()
	return &out
}
