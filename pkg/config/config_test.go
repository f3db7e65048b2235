package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, CartStorageRedis, cfg.Cart.Storage)
	assert.Equal(t, 720*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, 48*time.Hour, cfg.Orders.Expiry)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "development-secret", cfg.Auth.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CART_STORAGE", "BOLT")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ORDER_EXPIRY", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, CartStorageBolt, cfg.Cart.Storage)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 2*time.Hour, cfg.Orders.Expiry)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad storage":        {"ENVIRONMENT": "development", "CART_STORAGE": "sqlite"},
		"bad duration":       {"ENVIRONMENT": "development", "CART_TTL": "forever"},
		"bad redis db":       {"ENVIRONMENT": "development", "REDIS_DB": "two"},
		"missing jwt (prod)": {"ENVIRONMENT": "production", "JWT_SECRET": ""},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
