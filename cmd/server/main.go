// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/stylehub/internal/config"
	"github.com/javajoker/stylehub/internal/database"
	"github.com/javajoker/stylehub/internal/i18n"
	"github.com/javajoker/stylehub/internal/messaging"
	"github.com/javajoker/stylehub/internal/router"
	"github.com/javajoker/stylehub/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	setupLogging(cfg)

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Initialize DynamoDB
	client, err := database.NewDynamoDB(cfg.AWS)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize DynamoDB client")
	}

	checkCtx, cancelCheck := context.WithTimeout(context.Background(), 5*time.Second)
	if err := database.CheckTable(checkCtx, client, cfg.AWS.TableName); err != nil {
		logrus.WithError(err).WithField("table", cfg.AWS.TableName).Warn("Product table is not reachable yet")
	}
	cancelCheck()

	deps := router.Dependencies{
		Products: database.NewProductTable(client, cfg.AWS.TableName),
	}

	// Order store
	switch cfg.Orders.Store {
	case config.OrderStorePostgres:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize database")
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			logrus.WithError(err).Fatal("Failed to run migrations")
		}
		deps.Orders = database.NewOrderRepository(db)
	default:
		deps.Orders = database.NewOrderTable(client, cfg.Orders.TableName)
	}

	// Order events
	if cfg.AMQP.Enabled() {
		pool, err := messaging.NewChannelPool(cfg.AMQP.URL, cfg.AMQP.Queue, cfg.AMQP.PoolSize)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to RabbitMQ")
		}
		defer pool.Close()

		var publisher services.OrderPublisher = messaging.NewPublisher(pool, cfg.AMQP.Queue)
		deps.Publisher = publisher
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	done := make(chan struct{})
	deps.Done = done

	// Initialize router
	r := router.Initialize(cfg, deps)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":        cfg.Server.Port,
			"region":      cfg.AWS.Region,
			"table":       cfg.AWS.TableName,
			"order_store": cfg.Orders.Store,
		}).Info("StyleHub API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")
	close(done)

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
		return
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
