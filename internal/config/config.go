// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/javajoker/stylehub/internal/utils"
)

// Order store backends.
const (
	OrderStoreDynamoDB = "dynamodb"
	OrderStorePostgres = "postgres"
)

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	AWS         AWSConfig
	Orders      OrdersConfig
	Database    DatabaseConfig
	AMQP        AMQPConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	// ScanWarnThreshold is the listing size above which full scans are
	// reported as a scaling problem.
	ScanWarnThreshold int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	TableName       string
	Endpoint        string
}

type OrdersConfig struct {
	Store     string
	TableName string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

// DSN is the libpq connection string for the order database.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

type AMQPConfig struct {
	URL      string
	Queue    string
	PoolSize int
}

// Enabled reports whether order events should be published.
func (a AMQPConfig) Enabled() bool {
	return a.URL != ""
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// requiredEnvVars must be present for the service to start.
var requiredEnvVars = []string{"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "TABLE_NAME"}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:              getEnv("PORT", "3000"),
			ReadTimeout:       getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:      getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:       getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			ScanWarnThreshold: getEnvAsInt("SCAN_WARN_THRESHOLD", 1000),
		},
		AWS: AWSConfig{
			Region:          os.Getenv("AWS_REGION"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			TableName:       os.Getenv("TABLE_NAME"),
			Endpoint:        getEnv("DYNAMODB_ENDPOINT", ""),
		},
		Orders: OrdersConfig{
			Store:     strings.ToLower(getEnv("ORDER_STORE", OrderStoreDynamoDB)),
			TableName: getEnv("ORDERS_TABLE", "StyleHubOrders"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "stylehub"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Queue:    getEnv("AMQP_QUEUE", "stylehub.orders"),
			PoolSize: getEnvAsInt("AMQP_POOL_SIZE", 4),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
	}

	return config, config.Validate()
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var missing []string
	for _, key := range requiredEnvVars {
		if c.value(key) == "" {
			missing = append(missing, key)
		}
	}

	switch c.Orders.Store {
	case OrderStoreDynamoDB:
		if c.Orders.TableName == "" {
			missing = append(missing, "ORDERS_TABLE")
		}
	case OrderStorePostgres:
		if c.Database.Password == "" && c.Environment == "production" {
			missing = append(missing, "DB_PASSWORD")
		}
	default:
		missing = append(missing, "ORDER_STORE (dynamodb|postgres)")
	}

	if len(missing) > 0 {
		return &utils.ConfigurationError{Missing: missing}
	}
	return nil
}

func (c *Config) value(key string) string {
	switch key {
	case "AWS_REGION":
		return c.AWS.Region
	case "AWS_ACCESS_KEY_ID":
		return c.AWS.AccessKeyID
	case "AWS_SECRET_ACCESS_KEY":
		return c.AWS.SecretAccessKey
	case "TABLE_NAME":
		return c.AWS.TableName
	}
	return ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
