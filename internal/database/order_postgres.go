// internal/database/order_postgres.go
package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/utils"
)

// OrderRepository stores orders in PostgreSQL.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	record, err := models.NewOrderRecord(order)
	if err != nil {
		return utils.Backend("encode order", err)
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrConflict
		}
		return utils.Backend("insert order", err)
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, orderID string) (*models.Order, error) {
	var record models.OrderRecord
	if err := r.db.WithContext(ctx).First(&record, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, utils.Backend("select order", err)
	}

	order, err := record.Order()
	if err != nil {
		return nil, utils.Backend("decode order", err)
	}
	return order, nil
}
