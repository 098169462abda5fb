package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Storage StorageConfig
	Log     LogConfig
	Catalog CatalogConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig locates the local durable storage directory. The guest
// cart document and the saved session token live under this directory.
type StorageConfig struct {
	Dir string
}

type LogConfig struct {
	Level  string
	Format string
}

type CatalogConfig struct {
	// RefreshSpec is a cron expression for the background catalog refresh.
	// Empty disables the scheduler.
	RefreshSpec string
	PageSize    int
	ExportPath  string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		API: APIConfig{
			BaseURL: getEnv("STOREFRONT_API_URL", "http://localhost:8080"),
			Timeout: parseDuration(getEnv("STOREFRONT_API_TIMEOUT", "30s")),
		},
		Storage: StorageConfig{
			Dir: getEnv("STOREFRONT_STATE_DIR", defaultStateDir()),
		},
		Log: LogConfig{
			Level:  getEnv("STOREFRONT_LOG_LEVEL", "info"),
			Format: getEnv("STOREFRONT_LOG_FORMAT", "console"),
		},
		Catalog: CatalogConfig{
			RefreshSpec: getEnv("STOREFRONT_CATALOG_REFRESH", ""),
			PageSize:    parseInt(getEnv("STOREFRONT_CATALOG_PAGE_SIZE", "20"), 20),
			ExportPath:  getEnv("STOREFRONT_EXPORT_PATH", "catalog.xlsx"),
		},
	}

	return config, nil
}

// GuestCartPath returns the path of the guest cart document.
func (c *StorageConfig) GuestCartPath() string {
	return filepath.Join(c.Dir, "guest_cart_items.json")
}

// SessionPath returns the path of the saved session token.
func (c *StorageConfig) SessionPath() string {
	return filepath.Join(c.Dir, "session")
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 30s", s)
		return 30 * time.Second
	}
	return duration
}

func parseInt(s string, defaultValue int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			log.Printf("Invalid integer %s, using default %d", s, defaultValue)
			return defaultValue
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return defaultValue
	}
	return n
}
