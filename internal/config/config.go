package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort       = 5000
	defaultJWTSecret  = "your-secret-key"
	defaultSQLitePath = "catalog.db"
	defaultAdminPass  = "admin123"
	defaultFeedURL    = "https://fakestoreapi.com/products"
)

type Config struct {
	ServerPort int

	// DatabaseURL selects postgres when set; otherwise the embedded
	// sqlite file at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	JWTSecret []byte

	// AdminPassword is the first-run bootstrap password. The shipped
	// default is a documented convenience and must be rotated in any
	// real deployment.
	AdminPassword string

	FeedURL string

	KafkaBrokers []string

	LogLevel string
}

// Load reads .env (missing file is only a notice) and the process
// environment. Defaults match the documented ones.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	return Config{
		ServerPort:    EnvIntDefault("SERVER_PORT", defaultPort),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    EnvDefault("SQLITE_PATH", defaultSQLitePath),
		JWTSecret:     []byte(EnvDefault("JWT_SECRET", defaultJWTSecret)),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", defaultAdminPass),
		FeedURL:       EnvDefault("PRODUCT_FEED_URL", defaultFeedURL),
		KafkaBrokers:  CSV(os.Getenv("KAFKA_BROKERS")),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}
}

// SecretDefaulted reports whether the signing secret is still the
// shipped default, so startup can warn about it.
func (c Config) SecretDefaulted() bool {
	return string(c.JWTSecret) == defaultJWTSecret
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
