package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Slot backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Ownership policies
const (
	OwnershipTrusted  = "trusted"
	OwnershipEnforced = "enforced"
)

// Category filter modes
const (
	CategoryIgnore = "ignore"
	CategoryTags   = "tags"
)

const devJWTSecret = "recipebox-dev-secret"

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string
	LogLevel       string

	// Durable slot configuration
	SlotBackend string
	SlotName    string
	SlotFile    string
	SQLitePath  string

	// SlotFlushInterval re-saves the persisted state periodically so a
	// failed write is retried. Zero disables it.
	SlotFlushInterval time.Duration

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// S3 configuration
	S3Bucket  string
	S3Prefix  string
	AWSRegion string

	// Session token configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Store behavior
	OwnershipPolicy string
	CategoryMode    string
	SeedCount       int

	// RecipeCreateLimit is the number of recipes a user may create per hour
	// when Redis is available. Zero disables the limit.
	RecipeCreateLimit int
}

// LoadConfig creates a new Config from a .env file, environment variables and secrets
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{Env: GetEnvironment()}
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", cfg.Env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads DOTENV_FILE (default .env) without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv("DOTENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	var err error

	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.SlotBackend = strings.ToLower(getEnv("SLOT_BACKEND", BackendFile))
	cfg.SlotName = getEnv("SLOT_NAME", "recipe-storage")
	cfg.SlotFile = getEnv("SLOT_FILE", filepath.Join("data", "recipe-storage.json"))
	cfg.SQLitePath = getEnv("SQLITE_PATH", filepath.Join("data", "recipebox.db"))
	if cfg.SlotFlushInterval, err = time.ParseDuration(getEnv("SLOT_FLUSH_INTERVAL", "1m")); err != nil {
		return fmt.Errorf("invalid SLOT_FLUSH_INTERVAL: %w", err)
	}

	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = secretOrEnv("db_user", "DB_USER", "postgres")
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD", "")
	cfg.DBName = getEnv("DB_NAME", "recipebox")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD", "")
	cfg.RedisURL = secretOrEnv("redis_url", "REDIS_URL", "")
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return err
	}

	cfg.S3Bucket = getEnv("S3_BUCKET_NAME", "")
	cfg.S3Prefix = getEnv("S3_PREFIX", "slots/")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")

	defaultSecret := ""
	if cfg.Env != Production {
		defaultSecret = devJWTSecret
	}
	cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET", defaultSecret)
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h")); err != nil {
		return fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg.OwnershipPolicy = strings.ToLower(getEnv("OWNERSHIP_POLICY", OwnershipTrusted))
	cfg.CategoryMode = strings.ToLower(getEnv("CATEGORY_MODE", CategoryIgnore))
	if cfg.SeedCount, err = getEnvInt("SEED_COUNT", 12); err != nil {
		return err
	}
	if cfg.RecipeCreateLimit, err = getEnvInt("RECIPE_CREATE_LIMIT", 0); err != nil {
		return err
	}

	return nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// secretOrEnv prefers the environment variable, then the secret file
func secretOrEnv(secret, key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
