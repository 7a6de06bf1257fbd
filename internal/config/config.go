package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	DBConnString    string
	RedisAddr       string
	GatewayURL      string
	GatewayToken    string
	GatewayTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// FromEnv builds Config with defaults, overridden by environment variables.
// DB_DSN and REDIS_ADDR may be empty, in which case the server falls back to
// in-memory session storage and caching.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DBConnString:    os.Getenv("DB_DSN"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		GatewayURL:      envOrDefault("GATEWAY_URL", "http://localhost:9090"),
		GatewayToken:    os.Getenv("GATEWAY_TOKEN"),
		GatewayTimeout:  envDuration("GATEWAY_TIMEOUT_SECONDS", 10*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		AllowedOrigins:  envList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
