// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/utils"
)

// ProductStore is the catalog table.
type ProductStore interface {
	Name() string
	Get(ctx context.Context, productID string) (*models.Product, error)
	Scan(ctx context.Context, category string) ([]models.Product, error)
	Ping(ctx context.Context) (int, error)
}

type ProductService struct {
	store             ProductStore
	scanWarnThreshold int
}

// ProductQuery carries the query parameters of GET /products.
type ProductQuery struct {
	Category  string `form:"category"`
	ProductID string `form:"productId"`
}

func NewProductService(store ProductStore, scanWarnThreshold int) *ProductService {
	return &ProductService{
		store:             store,
		scanWarnThreshold: scanWarnThreshold,
	}
}

func (s *ProductService) TableName() string {
	return s.store.Name()
}

// GetProduct is a point lookup on the primary key.
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, &utils.ValidationError{
			Message: "product id is required",
			Fields:  []utils.FieldError{{Field: "productId", Tag: "required", Message: "productId is required"}},
		}
	}

	product, err := s.store.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts scans the catalog, optionally keeping one category.
func (s *ProductService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	category = strings.TrimSpace(category)

	products, err := s.store.Scan(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	fields := logrus.Fields{
		"table":    s.store.Name(),
		"category": category,
		"count":    len(products),
	}
	// Category filtering is a full scan; it needs a category index once the
	// catalog grows past the threshold.
	if category != "" && s.scanWarnThreshold > 0 && len(products) >= s.scanWarnThreshold {
		logrus.WithFields(fields).Warn("Category query served by full table scan")
	} else {
		logrus.WithFields(fields).Debug("Products scanned")
	}

	return products, nil
}

// Query resolves GET /products: a product id wins over a category.
func (s *ProductService) Query(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	if strings.TrimSpace(q.ProductID) != "" {
		product, err := s.GetProduct(ctx, q.ProductID)
		if err != nil {
			return nil, err
		}
		return []models.Product{*product}, nil
	}
	return s.ListProducts(ctx, q.Category)
}

// CheckStore probes the table with a one-item scan.
func (s *ProductService) CheckStore(ctx context.Context) (int, error) {
	return s.store.Ping(ctx)
}
