package services

import (
	"context"
	"errors"
	"sync"

	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/utils"
)

type memoryProducts struct {
	products []models.Product
	err      error
}

func (m *memoryProducts) Name() string { return "Products" }

func (m *memoryProducts) Get(_ context.Context, id string) (*models.Product, error) {
	if m.err != nil {
		return nil, utils.Backend("get", m.err)
	}
	for _, p := range m.products {
		if p.ProductID == id {
			p := p
			return &p, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (m *memoryProducts) Scan(_ context.Context, category string) ([]models.Product, error) {
	if m.err != nil {
		return nil, utils.Backend("scan", m.err)
	}
	out := []models.Product{}
	for _, p := range m.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryProducts) Ping(context.Context) (int, error) {
	if m.err != nil {
		return 0, utils.Backend("scan", m.err)
	}
	if len(m.products) > 0 {
		return 1, nil
	}
	return 0, nil
}

type memoryOrders struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	err    error
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{orders: map[string]*models.Order{}}
}

func (m *memoryOrders) Save(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return utils.Backend("put", m.err)
	}
	if _, ok := m.orders[order.OrderID]; ok {
		return utils.ErrConflict
	}
	m.orders[order.OrderID] = order
	return nil
}

func (m *memoryOrders) Get(_ context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order, ok := m.orders[id]; ok {
		return order, nil
	}
	return nil, utils.ErrNotFound
}

type recordingPublisher struct {
	published []string
	err       error
}

func (r *recordingPublisher) PublishOrderPlaced(_ context.Context, order *models.Order) error {
	if r.err != nil {
		return r.err
	}
	r.published = append(r.published, order.OrderID)
	return nil
}

var errUnavailable = errors.New("service unavailable")

func catalog() *memoryProducts {
	return &memoryProducts{products: []models.Product{
		{ProductID: "jeans-1", Name: "Slim Fit Jeans", Price: 3500, Category: "jeans"},
		{ProductID: "jeans-2", Name: "Bootcut Jeans", Price: 4200, Category: "jeans"},
		{ProductID: "shirt-1", Name: "Oxford Shirt", Price: 2200, Category: "shirts"},
	}}
}
