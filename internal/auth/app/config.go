package app

import (
	"os"
	"strconv"
	"time"

	"github.com/tealsec/authd/pkg/jwtx"
)

type Config struct {
	JWTSecret string // Required: HMAC secret for token signing (min 32 bytes)

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 168h)

	AllowedOrigin string // Optional: browser origin allowed by CORS (default: http://localhost:3000)

	DemoUserID   string // Optional: seeded demo account id (default: user-demo-001)
	DemoUsername string // Optional: seeded demo account username (default: demo)
	DemoPassword string // Optional: seeded demo account password (default: password)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret: os.Getenv("AUTH_JWT_SECRET"),

		AccessTokenTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),

		AllowedOrigin: getEnvOrDefault("AUTH_ALLOWED_ORIGIN", "http://localhost:3000"),

		DemoUserID:   getEnvOrDefault("AUTH_DEMO_USER_ID", "user-demo-001"),
		DemoUsername: getEnvOrDefault("AUTH_DEMO_USERNAME", "demo"),
		DemoPassword: getEnvOrDefault("AUTH_DEMO_PASSWORD", "password"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
