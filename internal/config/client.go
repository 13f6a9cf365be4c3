// internal/config/client.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// ClientConfig drives the storefront command line client.
type ClientConfig struct {
	APIBaseURL string
	DataDir    string
	Timeout    time.Duration
	Verbose    bool
}

func LoadClient() *ClientConfig {
	godotenv.Load()

	return &ClientConfig{
		APIBaseURL: getEnv("STOREFRONT_API_URL", "http://localhost:3000"),
		DataDir:    getEnv("STOREFRONT_DATA_DIR", defaultDataDir()),
		Timeout:    getEnvAsDuration("STOREFRONT_TIMEOUT", 10*time.Second),
		Verbose:    getEnvAsBool("STOREFRONT_VERBOSE", false),
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "stylehub")
	}
	return ".stylehub"
}
