package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	defaultHTTPAddr         = "0.0.0.0:80"
	defaultCacheGranularity = time.Minute
	defaultWorkerInterval   = time.Minute
	defaultMinioBucket      = "cms-media"
	defaultCORSOrigin       = "http://localhost:3000"
)

type Config struct {
	HTTPAddr     string
	DBConnectDSN string
	JWTSecret    string
	// SecureCookies выставляет флаг Secure у сессионной куки
	SecureCookies bool
	CORSOrigin    string
	LogLevel      log.Lvl

	// KafkaBrokers пуст, если события отключены
	KafkaBrokers []string
	// RedisURL пуст, если кэш снимков дашборда отключен
	RedisURL         string
	CacheGranularity time.Duration

	Minio MinioConfig

	WorkerID       string
	WorkerInterval time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Enabled - загрузки доступны только при заданном адресе MinIO
func (m MinioConfig) Enabled() bool {
	return m.Endpoint != ""
}

var (
	ErrMissingDSN       = errors.New("DB_CONNECT_DSN переменная окружения обязательна")
	ErrMissingJWTSecret = errors.New("JWT_SECRET переменная окружения обязательна")
)

// Load читает .env (если он есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info(".env файл не обнаружен")
	}

	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", defaultHTTPAddr),
		DBConnectDSN:     os.Getenv("DB_CONNECT_DSN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SecureCookies:    getBool("SECURE_COOKIES", false),
		CORSOrigin:       getEnv("CORS_ORIGIN", defaultCORSOrigin),
		LogLevel:         parseLogLevel(os.Getenv("LOG_LEVEL")),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		RedisURL:         os.Getenv("REDIS_URL"),
		CacheGranularity: getDuration("DASHBOARD_CACHE_GRANULARITY", defaultCacheGranularity),
		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    getBool("MINIO_USE_SSL", false),
			Bucket:    getEnv("MINIO_BUCKET", defaultMinioBucket),
		},
		WorkerID:       os.Getenv("DASHBOARD_WORKER_ID"),
		WorkerInterval: getDuration("DASHBOARD_WORKER_INTERVAL", defaultWorkerInterval),
	}

	if cfg.DBConnectDSN == "" {
		return nil, ErrMissingDSN
	}
	if cfg.WorkerID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			cfg.WorkerID = fmt.Sprintf("dashboard-worker-%d", time.Now().Unix())
		} else {
			cfg.WorkerID = fmt.Sprintf("dashboard-worker-%s", hostname)
		}
	}
	return cfg, nil
}

// RequireJWTSecret нужен только сервисам, которые выдают или проверяют сессии
func (c *Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warnf("Неверный формат %s: %s, используется %t", key, raw, fallback)
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		log.Warnf("Неверный формат %s: %s, используется %s", key, raw, fallback)
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseLogLevel(raw string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
