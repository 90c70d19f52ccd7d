package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	HTTPTimeout   time.Duration
	LogLevel      slog.Level
	AuthURL       string
	AuthAPIKey    string
	AuthRetries   int
	AuditCapacity int
	RateLimitRPS  float64
	RateBurst     int
	CatalogFile   string
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	return Config{
		Port:          envOr("PORT", "8080"),
		HTTPTimeout:   to,
		LogLevel:      parseLevel(os.Getenv("LOG_LEVEL")),
		AuthURL:       os.Getenv("AUTH_URL"),
		AuthAPIKey:    os.Getenv("AUTH_API_KEY"),
		AuthRetries:   envInt("AUTH_RETRIES", 2),
		AuditCapacity: envInt("AUDIT_LOG_CAPACITY", 100),
		RateLimitRPS:  envFloat("RATE_LIMIT_RPS", 20),
		RateBurst:     envInt("RATE_LIMIT_BURST", 40),
		CatalogFile:   os.Getenv("CATALOG_FILE"),
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func envFloat(k string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil {
		return def
	}
	return v
}
