// internal/router/router.go
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/stylehub/internal/config"
	"github.com/javajoker/stylehub/internal/handlers"
	"github.com/javajoker/stylehub/internal/middleware"
	"github.com/javajoker/stylehub/internal/services"
)

// Dependencies are the stores the routes read and write.
type Dependencies struct {
	Products  services.ProductStore
	Orders    services.OrderStore
	Publisher services.OrderPublisher
	// Done stops background housekeeping; nil disables it.
	Done <-chan struct{}
}

func Initialize(cfg *config.Config, deps Dependencies) *gin.Engine {
	// Initialize services
	productService := services.NewProductService(deps.Products, cfg.Server.ScanWarnThreshold)
	orderService := services.NewOrderService(deps.Orders, deps.Publisher)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(productService, cfg.AWS.Region)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	if deps.Done != nil {
		go limiter.Cleanup(time.Minute, deps.Done)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(limiter.Middleware())

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/test-db", healthHandler.TestStore)

	products := r.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	orders := r.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:id", orderHandler.GetOrder)
	}

	r.NoRoute(handlers.NoRoute)

	return r
}
