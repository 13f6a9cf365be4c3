// internal/storefront/cart.go
package storefront

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/pricing"
	"github.com/javajoker/stylehub/internal/utils"
)

// ErrIndexOutOfRange is returned for a cart line that does not exist.
var ErrIndexOutOfRange = errors.New("cart index out of range")

// CartEvent is delivered to listeners after a committed mutation.
type CartEvent struct {
	Items   models.Cart
	Count   int
	Summary models.OrderSummary
}

type CartListener func(CartEvent)

// CartStore owns the cart. Every mutation persists the whole cart before it
// becomes visible; a failed write leaves the store as it was.
type CartStore struct {
	mu        sync.Mutex
	storage   Storage
	items     models.Cart
	listeners []CartListener
}

// NewCartStore loads the persisted cart. A missing or unreadable blob
// starts an empty cart.
func NewCartStore(storage Storage) *CartStore {
	s := &CartStore{storage: storage}
	s.items = s.load()
	return s
}

func (s *CartStore) load() models.Cart {
	data, err := s.storage.Get(models.CartStorageKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logrus.WithError(err).Warn("Failed to read saved cart")
		}
		return models.Cart{}
	}
	var items models.Cart
	if err := json.Unmarshal(data, &items); err != nil {
		logrus.WithError(err).Warn("Saved cart is corrupt, starting empty")
		return models.Cart{}
	}
	if items == nil {
		items = models.Cart{}
	}
	return items
}

// Reload re-reads the persisted cart, picking up writes by other processes.
func (s *CartStore) Reload() {
	s.mu.Lock()
	s.items = s.load()
	event := s.event()
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, event)
}

// Subscribe registers a listener for committed changes.
func (s *CartStore) Subscribe(listener CartListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Add puts one unit of a product in the cart. Lines are keyed by product
// and size; an empty size is stored as "N/A".
func (s *CartStore) Add(productID, name string, price float64, size string) error {
	productID = strings.TrimSpace(productID)
	var fields []utils.FieldError
	if productID == "" {
		fields = append(fields, utils.FieldError{Field: "productId", Tag: "required", Message: "productId is required"})
	}
	if price <= 0 {
		fields = append(fields, utils.FieldError{Field: "price", Tag: "gt", Message: "price must be greater than 0"})
	}
	if len(fields) > 0 {
		return &utils.ValidationError{Message: "invalid cart item", Fields: fields}
	}
	if strings.TrimSpace(size) == "" {
		size = models.DefaultSize
	}

	return s.mutate(func(items models.Cart) (models.Cart, error) {
		for i := range items {
			if items[i].Matches(productID, size) {
				items[i].Quantity++
				return items, nil
			}
		}
		return append(items, models.CartItem{
			ID:       productID,
			Name:     name,
			Price:    price,
			Size:     size,
			Quantity: 1,
			Image:    productID,
		}), nil
	})
}

// UpdateQuantity changes line index by delta. A resulting quantity of zero
// or less removes the line.
func (s *CartStore) UpdateQuantity(index, delta int) error {
	return s.mutate(func(items models.Cart) (models.Cart, error) {
		if index < 0 || index >= len(items) {
			return nil, ErrIndexOutOfRange
		}
		items[index].Quantity += delta
		if items[index].Quantity <= 0 {
			return append(items[:index], items[index+1:]...), nil
		}
		return items, nil
	})
}

func (s *CartStore) Remove(index int) error {
	return s.mutate(func(items models.Cart) (models.Cart, error) {
		if index < 0 || index >= len(items) {
			return nil, ErrIndexOutOfRange
		}
		return append(items[:index], items[index+1:]...), nil
	})
}

// Clear empties the cart.
func (s *CartStore) Clear() error {
	return s.mutate(func(models.Cart) (models.Cart, error) {
		return models.Cart{}, nil
	})
}

// Items returns a copy of the current lines.
func (s *CartStore) Items() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}

func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Count()
}

func (s *CartStore) Summary() models.OrderSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Compute(s.items)
}

func (s *CartStore) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// mutate applies fn to a copy of the items, persists the result and only
// then commits it.
func (s *CartStore) mutate(fn func(models.Cart) (models.Cart, error)) error {
	s.mu.Lock()
	next, err := fn(s.items.Clone())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.persist(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.items = next
	event := s.event()
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, event)
	return nil
}

func (s *CartStore) persist(items models.Cart) error {
	data, err := json.Marshal(items)
	if err != nil {
		return &utils.PersistenceError{Key: models.CartStorageKey, Err: err}
	}
	if err := s.storage.Set(models.CartStorageKey, data); err != nil {
		return &utils.PersistenceError{Key: models.CartStorageKey, Err: err}
	}
	return nil
}

func (s *CartStore) event() CartEvent {
	return CartEvent{
		Items:   s.items.Clone(),
		Count:   s.items.Count(),
		Summary: pricing.Compute(s.items),
	}
}

func notify(listeners []CartListener, event CartEvent) {
	for _, l := range listeners {
		l(event)
	}
}
