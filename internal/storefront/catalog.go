// internal/storefront/catalog.go
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/utils"
)

// envelope mirrors utils.Envelope with the payload left undecoded.
type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Count   *int               `json:"count"`
	Error   string             `json:"error"`
	Code    string             `json:"code"`
	Details []utils.FieldError `json:"details"`
}

// CatalogClient talks to the StyleHub backend. It is also the
// OrderSubmitter used by Checkout.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CatalogClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListProducts returns every product, or one category when category is set.
// An empty result is not an error.
func (c *CatalogClient) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	q := url.Values{}
	if category = strings.TrimSpace(category); category != "" {
		q.Set("category", category)
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var products []models.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct returns utils.ErrNotFound for an unknown id.
func (c *CatalogClient) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, &utils.ValidationError{
			Message: "product id is required",
			Fields:  []utils.FieldError{{Field: "productId", Tag: "required", Message: "productId is required"}},
		}
	}

	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, &product); err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	return &product, nil
}

// SubmitOrder posts the order to the backend.
func (c *CatalogClient) SubmitOrder(ctx context.Context, order *models.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	if err := c.do(ctx, http.MethodPost, "/orders", body, nil); err != nil {
		return fmt.Errorf("submit order %s: %w", order.OrderID, err)
	}
	return nil
}

// do performs one request and decodes the envelope's data into out.
// 404 maps to utils.ErrNotFound, 400 to a ValidationError, 409 to
// utils.ErrConflict; any other failure is a BackendError.
func (c *CatalogClient) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return utils.Backend(method+" "+path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return utils.Backend(method+" "+path, fmt.Errorf("failed to read response body: %w", err))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return utils.Backend(method+" "+path, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, truncate(raw)))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return utils.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return &utils.ValidationError{Message: msg, Fields: env.Details}
	case resp.StatusCode == http.StatusConflict:
		return utils.ErrConflict
	case resp.StatusCode >= 300 || !env.Success:
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return utils.Backend(method+" "+path, fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return utils.Backend(method+" "+path, fmt.Errorf("failed to unmarshal response: %w", err))
	}
	return nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
