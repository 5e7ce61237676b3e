package app

import (
	"io"
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL    string // Commerce API root (default: http://localhost:9000)
	PublicBaseURL string // Where the payment processor redirects back to (default: http://localhost:8080)

	StoreDriver  string // sqlite, diskv, redis or memory (default: sqlite)
	DatabaseFile string // Path to SQLite database file (default: ./storefront.db)
	StateDir     string // diskv state directory (default: ./state)
	RedisAddr    string // Redis address (default: localhost:6379)
	RedisPrefix  string // Redis key prefix (default: storefront)

	CredentialKey     string // Optional: master key material for sealing the stored credential
	CredentialKeyPath string // Key file, generated on first start when missing (default: ./storefront.key)

	RefreshThreshold time.Duration // Refresh access tokens this close to expiry (default: 300s)
	RefreshTimeout   time.Duration // Bound on one refresh exchange (default: 10s)
	HTTPTimeout      time.Duration // Bound on every commerce API call (default: 10s)

	PendingTTL           time.Duration // Clear abandoned checkouts older than this, 0 disables (default: 0)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 10m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	LogOutput           io.Writer     // Log destination (default: stdout)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		APIBaseURL:           getEnvOrDefault("API_BASE_URL", "http://localhost:9000"),
		PublicBaseURL:        getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		StoreDriver:          getEnvOrDefault("STORE_DRIVER", "sqlite"),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "storefront.db"),
		StateDir:             getEnvOrDefault("STATE_DIR", "state"),
		RedisAddr:            getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:          getEnvOrDefault("REDIS_PREFIX", "storefront"),
		CredentialKey:        os.Getenv("CREDENTIAL_KEY"),
		CredentialKeyPath:    getEnvOrDefault("CREDENTIAL_KEY_PATH", "storefront.key"),
		RefreshThreshold:     getEnvDurationOrDefault("REFRESH_THRESHOLD", 300*time.Second),
		RefreshTimeout:       getEnvDurationOrDefault("REFRESH_TIMEOUT", 10*time.Second),
		HTTPTimeout:          getEnvDurationOrDefault("HTTP_TIMEOUT", 10*time.Second),
		PendingTTL:           getEnvDurationOrDefault("PENDING_TTL", 0),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds, matching how token lifetimes are usually quoted
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
