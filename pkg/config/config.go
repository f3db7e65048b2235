package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/machbazar/storefront/pkg/database"
)

// Cart storage backends
const (
	CartStorageRedis = "redis"
	CartStorageBolt  = "bolt"
)

// CartConfig selects where cart snapshots are persisted
type CartConfig struct {
	Storage  string
	BoltPath string
	TTL      time.Duration
}

// KafkaConfig holds broker settings for order events
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	GroupID string
}

// TracingConfig holds the Jaeger exporter settings
type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

// AuthConfig holds admin credentials and token signing settings
type AuthConfig struct {
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

// OrderConfig controls expiry of unverified mobile payments
type OrderConfig struct {
	Expiry         time.Duration
	ExpirySchedule string
}

// Config is the full storefront configuration
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	LogFile     string
	HTTPPort    string

	Database database.Config
	Redis    database.RedisConfig
	Cart     CartConfig
	Kafka    KafkaConfig
	Tracing  TracingConfig
	Auth     AuthConfig
	Orders   OrderConfig
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	// A missing .env is normal in containers
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "machbazar"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: database.RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Cart: CartConfig{
			Storage:  strings.ToLower(getEnv("CART_STORAGE", CartStorageRedis)),
			BoltPath: getEnv("CART_BOLT_PATH", "data/carts.db"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			GroupID: getEnv("KAFKA_GROUP_ID", "storefront-stock"),
		},
		Tracing: TracingConfig{
			Endpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Orders: OrderConfig{
			ExpirySchedule: getEnv("ORDER_EXPIRY_SCHEDULE", "@every 15m"),
		},
	}

	var err error
	if cfg.Redis.DB, err = cast.ToIntE(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.Kafka.Enabled, err = cast.ToBoolE(getEnv("KAFKA_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("invalid KAFKA_ENABLED: %w", err)
	}
	if cfg.Tracing.Enabled, err = cast.ToBoolE(getEnv("TRACING_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}
	if cfg.Cart.TTL, err = time.ParseDuration(getEnv("CART_TTL", "720h")); err != nil {
		return nil, fmt.Errorf("invalid CART_TTL: %w", err)
	}
	if cfg.Auth.TokenTTL, err = time.ParseDuration(getEnv("ADMIN_TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TOKEN_TTL: %w", err)
	}
	if cfg.Orders.Expiry, err = time.ParseDuration(getEnv("ORDER_EXPIRY", "48h")); err != nil {
		return nil, fmt.Errorf("invalid ORDER_EXPIRY: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cart.Storage {
	case CartStorageRedis, CartStorageBolt:
	default:
		return fmt.Errorf("invalid CART_STORAGE %q: want %q or %q", c.Cart.Storage, CartStorageRedis, CartStorageBolt)
	}
	if c.Auth.JWTSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("JWT_SECRET is required outside development")
		}
		c.Auth.JWTSecret = "development-secret"
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
