// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Service
	KeyAPIRunning      = "api.running"
	KeyEndpointMissing = "api.endpoint_not_found"
	KeyInternalError   = "api.internal_error"
	KeyRateLimited     = "api.rate_limited"

	// Store
	KeyStoreConnected = "store.connected"
	KeyStoreFailed    = "store.failed"

	// Products
	KeyProductNotFound = "product.not_found"

	// Orders
	KeyOrderCreated         = "order.created"
	KeyOrderNotFound        = "order.not_found"
	KeyOrderExists          = "order.exists"
	KeyOrderSummaryMismatch = "order.summary_mismatch"

	// Cart and checkout
	KeyCartEmpty = "cart.empty"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
