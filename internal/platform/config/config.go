package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends for provider name lookups.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	LogLevel      string
	LogFormat     string
	BillingPolicy string
	Provider      ProviderConfig
	Cache         CacheConfig
	Redis         RedisConfig
}

// ProviderConfig points the registry adapter at its upstream.
type ProviderConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig selects and sizes the provider response cache.
type CacheConfig struct {
	Backend string
	TTL     time.Duration
	Size    int
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() Server {
	_ = godotenv.Load()

	return Server{
		Addr:          firstNonEmpty(env("SEARCHORDER_ADDR"), ":8080"),
		LogLevel:      firstNonEmpty(env("LOG_LEVEL"), "info"),
		LogFormat:     firstNonEmpty(env("LOG_FORMAT"), "json"),
		BillingPolicy: firstNonEmpty(env("BILLING_POLICY"), "fallback_bills_one"),
		Provider: ProviderConfig{
			BaseURL: firstNonEmpty(env("PROVIDER_BASE_URL"), "http://localhost:9090"),
			Timeout: durationEnv("PROVIDER_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			Backend: strings.ToLower(firstNonEmpty(env("CACHE_BACKEND"), CacheMemory)),
			TTL:     durationEnv("CACHE_TTL", 5*time.Minute),
			Size:    intEnv("CACHE_SIZE", 512),
		},
		Redis: RedisConfig{
			URL:          env("REDIS_URL"),
			PoolSize:     intEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := env(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	raw := env(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
