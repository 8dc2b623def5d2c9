package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("NOTIFIER_WORKERS", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 4, cfg.NotifierWorkers)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.False(t, cfg.Production())
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("NOTIFIER_WORKERS", "nope")
	t.Setenv("APP_ENV", "production")

	cfg := Load()
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 4, cfg.NotifierWorkers)
	assert.True(t, cfg.Production())
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	assert.Error(t, Load().Validate())

	t.Setenv("STORE_DRIVER", DriverMemory)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, Load().Validate())

	t.Setenv("JWT_SECRET", "s3cret")
	assert.NoError(t, Load().Validate())
}
