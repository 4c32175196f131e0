package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (users and admins share the signing key, admins carry a role claim)
	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	// Initial admin, seeded once when no admin account exists
	AdminUsername string
	AdminEmail    string
	AdminPassword string

	// Cache
	RedisURL      string
	StatsCacheTTL time.Duration

	// Observability
	SentryDSN        string
	AppEnv           string
	LogRetentionDays int

	// Server
	Port        string
	CORSOrigins string
}

// Load reads configuration from the environment, after applying a .env file
// if one is present in the working directory.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "talent_booking"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTExpiry:  parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),
		BcryptCost: parseInt(getEnv("BCRYPT_COST", "10"), 10),

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		StatsCacheTTL: parseDuration(getEnv("STATS_CACHE_TTL", "30s"), 30*time.Second),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
