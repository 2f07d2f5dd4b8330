package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"lg/plannit-go-api/internal/store"
	"lg/plannit-go-api/internal/usda"
)

// Config holds the configuration for the application.
type Config struct {
	Env  string
	Addr string

	// Persistence
	StoreDriver string
	DataDir     string
	SQLitePath  string
	DBURL       string

	// FoodData Central
	USDAAPIKey  string
	USDABaseURL string
	USDATimeout time.Duration
}

// LoadDotEnv loads .env from the working directory if one exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	driver := getenv("STORE_DRIVER", store.DriverFile)
	switch driver {
	case store.DriverMemory, store.DriverFile, store.DriverSQLite, store.DriverPostgres:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be one of: memory, file, sqlite, postgres (got %q)", driver)
	}

	dbURL := os.Getenv("DB_URL")
	if driver == store.DriverPostgres && dbURL == "" {
		return nil, fmt.Errorf("DB_URL environment variable not set")
	}

	timeout := usda.DefaultTimeout
	if s := os.Getenv("USDA_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("USDA_TIMEOUT must be a positive duration (got %q)", s)
		}
		timeout = d
	}

	apiKey, ok := os.LookupEnv("USDA_API_KEY")
	if !ok {
		apiKey = "DEMO_KEY"
	}

	return &Config{
		Env:         os.Getenv("ENV"),
		Addr:        getenv("ADDR", "localhost:3000"),
		StoreDriver: driver,
		DataDir:     getenv("DATA_DIR", "data"),
		SQLitePath:  getenv("SQLITE_PATH", "data/plannit.db"),
		DBURL:       dbURL,
		USDAAPIKey:  apiKey,
		USDABaseURL: getenv("USDA_BASE_URL", usda.DefaultBaseURL),
		USDATimeout: timeout,
	}, nil
}

// Store returns the persistence settings.
func (c *Config) Store() store.Config {
	return store.Config{
		Driver:     c.StoreDriver,
		DataDir:    c.DataDir,
		SQLitePath: c.SQLitePath,
		DBURL:      c.DBURL,
	}
}

// USDA returns the FoodData Central client settings.
func (c *Config) USDA() usda.Config {
	return usda.Config{
		APIKey:  c.USDAAPIKey,
		BaseURL: c.USDABaseURL,
		Timeout: c.USDATimeout,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
