package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	DBName            string
	Port              string
	AdminPassword     string
	AppEnv            string
	CacheTTL          time.Duration
	DBTimeout         time.Duration
	BodyLimitBytes    int64
	RedisURL          string
	RedisPassword     string
	RedisDB           int
	SeedAdminPassword string
	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers are
	// believed. Empty means the peer address is the client.
	TrustedProxies []string
}

// LoadEnv loads a .env file if one exists. A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func Load() *Config {
	LoadEnv()

	return &Config{
		MongoURI:          GetEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:            GetEnv("DB_NAME", "simpleshop"),
		Port:              GetEnv("PORT", "4000"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AppEnv:            GetEnv("APP_ENV", "development"),
		CacheTTL:          getEnvAsDuration("CACHE_TTL", 60*time.Second),
		DBTimeout:         getEnvAsDuration("DB_TIMEOUT", 5*time.Second),
		BodyLimitBytes:    int64(getEnvAsInt("BODY_LIMIT_BYTES", 8<<20)),
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		SeedAdminPassword: GetEnv("SEED_ADMIN_PASSWORD", "admin"),
		TrustedProxies:    getEnvAsList("TRUSTED_PROXIES"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
