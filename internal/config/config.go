package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration for the session agent.
type Config struct {
	Addr        string
	APIBaseURL  string
	DatabaseURL string
	CORSOrigins string

	APITimeout   time.Duration
	ProbeTimeout time.Duration

	CheckoutProbe       bool
	CheckoutMaxAttempts int
	CheckoutRetryDelay  time.Duration

	SessionSecret string
	SessionTTL    time.Duration

	CatalogTTL time.Duration
}

// DefaultCORSOrigins only admits a UI shell served from this machine.
const DefaultCORSOrigins = "http://localhost:3000,http://127.0.0.1:3000"

// Load reads .env (when present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] [INFO] .env not loaded:", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() Config {
	return Config{
		Addr:                getEnvOrDefault("AGENT_ADDR", "127.0.0.1:8080"),
		APIBaseURL:          strings.TrimRight(getEnvOrDefault("API_BASE_URL", "http://localhost:5000"), "/"),
		DatabaseURL:         getEnvOrDefault("DATABASE_URL", ""),
		CORSOrigins:         getEnvOrDefault("CORS_ORIGINS", DefaultCORSOrigins),
		APITimeout:          clamp(getDurationEnv("API_TIMEOUT_SECONDS", 15, time.Second), 5*time.Second, 20*time.Second),
		ProbeTimeout:        clamp(getDurationEnv("PROBE_TIMEOUT_SECONDS", 5, time.Second), time.Second, 20*time.Second),
		CheckoutProbe:       getBoolEnv("CHECKOUT_PROBE", false),
		CheckoutMaxAttempts: getIntEnv("CHECKOUT_MAX_ATTEMPTS", 1),
		CheckoutRetryDelay:  getDurationEnv("CHECKOUT_RETRY_DELAY_MS", 500, time.Millisecond),
		SessionSecret:       getEnvOrDefault("SESSION_SECRET", ""),
		SessionTTL:          getDurationEnv("SESSION_TTL_HOURS", 72, time.Hour),
		CatalogTTL:          getDurationEnv("CATALOG_TTL_SECONDS", 60, time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue)) * unit
}

func clamp(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
