package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime knob read from the environment.
type Config struct {
	AppName  string
	HTTPPort string

	JWTSecret       string
	JWTAlgorithm    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	LoginMaxAttempts int
	LoginWindow      time.Duration

	RateLimitPerMinute int
	CORSOrigins        []string

	PaymentProvider string

	MarzbanAPIURL string
	MarzbanToken  string
	SanaeiAPIURL  string
	SanaeiToken   string
}

// Load reads .env (if present) and builds the config from environment
// variables, falling back to development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppName:  getEnv("APP_NAME", "VPN Panel Pro"),
		HTTPPort: getEnv("HTTP_PORT", "8000"),

		JWTSecret:       getEnv("JWT_SECRET", "please-change-this-secret"),
		JWTAlgorithm:    getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,

		LoginMaxAttempts: getEnvInt("LOGIN_THROTTLE_MAX_ATTEMPTS", 5),
		LoginWindow:      time.Duration(getEnvInt("LOGIN_THROTTLE_WINDOW_SECONDS", 300)) * time.Second,

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		PaymentProvider: getEnv("PAYMENT_PROVIDER", "mock"),

		MarzbanAPIURL: os.Getenv("MARZBAN_API_URL"),
		MarzbanToken:  os.Getenv("MARZBAN_TOKEN"),
		SanaeiAPIURL:  os.Getenv("SANAEI_API_URL"),
		SanaeiToken:   os.Getenv("SANAEI_TOKEN"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
