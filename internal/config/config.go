package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the api and worker binaries read from the environment.
type Config struct {
	OrdersTable   string
	UsersTable    string
	CatalogTable  string
	CountersTable string
	QueueURL      string
	JWTSecret     string
	TokenTTL      time.Duration
	ListenAddr    string
	RunLocal      bool
}

// Load reads .env (when present) and the environment. Missing optional vars
// fall back to defaults; table names default to the collection names used by
// the existing data set.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		// .env is optional in deployed environments
		log.Printf("config: no .env file loaded: %v", err)
	}

	return Config{
		OrdersTable:   getenv("ORDERS_TABLE", "orders"),
		UsersTable:    getenv("USERS_TABLE", "users"),
		CatalogTable:  getenv("CATALOG_TABLE", "catalog"),
		CountersTable: getenv("COUNTERS_TABLE", "counters"),
		QueueURL:      os.Getenv("ORDERS_QUEUE_URL"),
		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),
		TokenTTL:      24 * time.Hour,
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		RunLocal:      os.Getenv("RUN_LOCAL") == "true",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
