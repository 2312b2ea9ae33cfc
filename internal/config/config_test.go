package config

import (
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_CONNECT_DSN", "postgres://cms@localhost/cms?sslmode=disable")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("DASHBOARD_CACHE_GRANULARITY", "")
	t.Setenv("DASHBOARD_WORKER_INTERVAL", "")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("MINIO_BUCKET", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DASHBOARD_WORKER_ID", "worker-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultHTTPAddr, cfg.HTTPAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, time.Minute, cfg.CacheGranularity)
	assert.Equal(t, time.Minute, cfg.WorkerInterval)
	assert.Equal(t, "cms-media", cfg.Minio.Bucket)
	assert.False(t, cfg.Minio.Enabled())
	assert.Equal(t, log.INFO, cfg.LogLevel)
	assert.Equal(t, "worker-1", cfg.WorkerID)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_CONNECT_DSN", "postgres://cms@localhost/cms?sslmode=disable")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("DASHBOARD_CACHE_GRANULARITY", "30s")
	t.Setenv("DASHBOARD_WORKER_INTERVAL", "not-a-duration")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.CacheGranularity)
	assert.Equal(t, defaultWorkerInterval, cfg.WorkerInterval)
	assert.True(t, cfg.SecureCookies)
	assert.True(t, cfg.Minio.Enabled())
	assert.Equal(t, log.DEBUG, cfg.LogLevel)
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_CONNECT_DSN", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingDSN)
}

func TestRequireJWTSecret(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).RequireJWTSecret(), ErrMissingJWTSecret)
	assert.NoError(t, (&Config{JWTSecret: "secret"}).RequireJWTSecret())
}
