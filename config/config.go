package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	LogEngine   string
	LogFile     string
	CORSOrigins []string

	// STORAGE_DRIVER: file | redis | mysql | sqlite
	StorageDriver string
	StorageDir    string
	SQLitePath    string

	Redis RedisConfig

	AMQPURL   string
	AMQPQueue string

	FilterMode         string
	HTTPTimeout        time.Duration
	NotificationBuffer int
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	TLS      bool
	Prefix   string
}

// Load reads .env when present, then the process environment.
func Load() (Config, bool) {
	loadedDotenv := godotenv.Load() == nil

	return Config{
		Port:          envOrDefault("PORT", "8080"),
		GinMode:       envOrDefault("GIN_MODE", "release"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		LogEngine:     envOrDefault("LOG_ENGINE", "slog"),
		LogFile:       os.Getenv("LOG_FILE"),
		CORSOrigins:   parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		StorageDriver: strings.ToLower(envOrDefault("STORAGE_DRIVER", "file")),
		StorageDir:    envOrDefault("STORAGE_DIR", ".storefront"),
		SQLitePath:    envOrDefault("SQLITE_PATH", "storefront.db"),
		Redis: RedisConfig{
			Addr:     redisAddr(),
			Username: os.Getenv("REDIS_USER"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
			TLS:      envBool("REDIS_TLS", false),
			Prefix:   envOrDefault("REDIS_PREFIX", "storefront"),
		},
		AMQPURL:            firstNonEmpty(os.Getenv("AMQP_URL"), os.Getenv("RABBITMQ_URL")),
		AMQPQueue:          envOrDefault("AMQP_QUEUE", "storefront.events"),
		FilterMode:         envOrDefault("FILTER_MODE", "last_filter_wins"),
		HTTPTimeout:        envDur("HTTP_TIMEOUT", 10*time.Second),
		NotificationBuffer: envInt("NOTIFICATION_BUFFER", 50),
	}, loadedDotenv
}

// ParseGinMode accepts debug, release and test; anything else maps to release.
func ParseGinMode(s string) (string, bool) {
	switch m := strings.ToLower(strings.TrimSpace(s)); m {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return m, true
	default:
		return gin.ReleaseMode, false
	}
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func redisAddr() string {
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	if host != "" && port != "" {
		return host + ":" + port
	}
	return envOrDefault("REDIS_ADDR", "localhost:6379")
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
