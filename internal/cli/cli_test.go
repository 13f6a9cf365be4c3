// internal/cli/cli_test.go
package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/stylehub/internal/config"
	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/storefront"
)

func backend(t *testing.T) *httptest.Server {
	t.Helper()
	jeans := models.Product{ProductID: "jeans-1", Name: "Slim Fit Jeans", Price: 2600, Category: "jeans"}

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "count": 1, "data": []models.Product{jeans}})
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimPrefix(r.URL.Path, "/products/") != jeans.ProductID {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Product not found"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": jeans})
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Order placed successfully"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, storage storefront.Storage, args ...string) (string, error) {
	t.Helper()
	cfg := &config.ClientConfig{APIBaseURL: srv.URL, DataDir: t.TempDir(), Timeout: time.Second}
	var out bytes.Buffer
	cmd := NewRootCommand(cfg, storage, &out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProductsCommand(t *testing.T) {
	srv := backend(t)

	out, err := run(t, srv, storefront.NewMemoryStorage(), "products", "--category", "jeans")
	require.NoError(t, err)
	assert.Contains(t, out, "Slim Fit Jeans")
	assert.Contains(t, out, "PKR 2,600")
}

func TestCartAndCheckoutCommands(t *testing.T) {
	srv := backend(t)
	storage := storefront.NewMemoryStorage()

	_, err := run(t, srv, storage, "checkout", "--full-name", "Ayesha Khan")
	assert.ErrorIs(t, err, storefront.ErrCartEmpty)
	assert.Equal(t, "Your cart is empty! Please add items before checkout.", describe(err))

	out, err := run(t, srv, storage, "cart", "add", "jeans-1", "--size", "32")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart: 1 item(s)")

	_, err = run(t, srv, storage, "cart", "update", "1", "1")
	require.NoError(t, err)

	_, err = run(t, srv, storage, "cart", "remove", "2")
	assert.ErrorIs(t, err, storefront.ErrIndexOutOfRange)

	out, err = run(t, srv, storage, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "PKR 5,460")

	out, err = run(t, srv, storage, "checkout",
		"--full-name", "Ayesha Khan",
		"--email", "ayesha@example.com",
		"--phone", "03000000000",
		"--address", "12 Mall Road",
		"--city", "Lahore",
		"--postal-code", "54000",
		"--country", "Pakistan",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Payment Method: COD")
	assert.Contains(t, out, "Total Amount: PKR 5,460")

	out, err = run(t, srv, storage, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")

	out, err = run(t, srv, storage, "last-order")
	require.NoError(t, err)
	assert.Contains(t, out, "Slim Fit Jeans (Size: 32) x 2")
}

func TestCheckoutValidationKeepsCart(t *testing.T) {
	srv := backend(t)
	storage := storefront.NewMemoryStorage()

	_, err := run(t, srv, storage, "cart", "add", "jeans-1")
	require.NoError(t, err)

	_, err = run(t, srv, storage, "checkout", "--full-name", "Ayesha Khan", "--email", "nope")
	require.Error(t, err)
	assert.Contains(t, describe(err), "email")

	assert.Equal(t, 1, storefront.NewCartStore(storage).Count())
}

func TestUnknownProduct(t *testing.T) {
	srv := backend(t)

	_, err := run(t, srv, storefront.NewMemoryStorage(), "product", "hat-9")
	require.Error(t, err)
	assert.Equal(t, "not found", describe(err))
}

func TestInvalidLineNumber(t *testing.T) {
	srv := backend(t)

	_, err := run(t, srv, storefront.NewMemoryStorage(), "cart", "remove", "zero")
	require.Error(t, err)
	assert.Contains(t, describe(err), "not a valid line")
}

// flakyBackend stores every order but loses the response to the first one.
type flakyBackend struct {
	mu     sync.Mutex
	stored []string
}

func (b *flakyBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	jeans := models.Product{ProductID: "jeans-1", Name: "Slim Fit Jeans", Price: 2600, Category: "jeans"}

	mux := http.NewServeMux()
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": jeans})
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		var order models.Order
		json.NewDecoder(r.Body).Decode(&order)

		b.mu.Lock()
		defer b.mu.Unlock()
		for _, id := range b.stored {
			if id == order.OrderID {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Order already exists"})
				return
			}
		}
		b.stored = append(b.stored, order.OrderID)
		if len(b.stored) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "gateway"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckoutRetryKeepsOrderID(t *testing.T) {
	backend := &flakyBackend{}
	srv := backend.server(t)
	storage := storefront.NewMemoryStorage()

	_, err := run(t, srv, storage, "cart", "add", "jeans-1", "--size", "32")
	require.NoError(t, err)

	args := []string{"checkout",
		"--full-name", "Ayesha Khan",
		"--email", "ayesha@example.com",
		"--phone", "03000000000",
		"--address", "12 Mall Road",
		"--city", "Lahore",
		"--postal-code", "54000",
		"--country", "Pakistan",
	}

	_, err = run(t, srv, storage, args...)
	require.Error(t, err)
	assert.Equal(t, 1, storefront.NewCartStore(storage).Count())

	time.Sleep(5 * time.Millisecond)

	out, err := run(t, srv, storage, args...)
	require.NoError(t, err)

	require.Len(t, backend.stored, 1)
	assert.Contains(t, out, "Retrying order "+backend.stored[0])
	assert.Contains(t, out, "Order ID: "+backend.stored[0])

	last, err := storefront.LoadLastOrder(storage)
	require.NoError(t, err)
	assert.Equal(t, backend.stored[0], last.OrderID)
	assert.Zero(t, storefront.NewCartStore(storage).Count())
}
