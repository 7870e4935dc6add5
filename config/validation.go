package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a Config
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateConfig checks the configuration for the selected backend and environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 0 || port > 65535 {
		fail("SERVER_PORT", "must be a port number, got %q", cfg.ServerPort)
	}
	if cfg.SlotName == "" {
		fail("SLOT_NAME", "is required")
	}

	switch cfg.SlotBackend {
	case BackendMemory:
	case BackendFile:
		if cfg.SlotFile == "" {
			fail("SLOT_FILE", "is required for the file backend")
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			fail("SQLITE_PATH", "is required for the sqlite backend")
		}
	case BackendPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
			fail("DB_HOST", "DB_HOST, DB_NAME and DB_USER are required for the postgres backend")
		}
		if cfg.Env == Production && cfg.DBPassword == "" {
			fail("DB_PASSWORD", "db_password secret is required in production")
		}
	case BackendRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			fail("REDIS_URL", "REDIS_URL or REDIS_HOST is required for the redis backend")
		}
	case BackendS3:
		if cfg.S3Bucket == "" {
			fail("S3_BUCKET_NAME", "is required for the s3 backend")
		}
	default:
		fail("SLOT_BACKEND", "unknown backend %q", cfg.SlotBackend)
	}

	if cfg.JWTSecret == "" {
		fail("JWT_SECRET", "jwt_secret secret is required")
	}
	if cfg.TokenTTL <= 0 {
		fail("TOKEN_TTL", "must be positive")
	}
	if cfg.OwnershipPolicy != OwnershipTrusted && cfg.OwnershipPolicy != OwnershipEnforced {
		fail("OWNERSHIP_POLICY", "must be %q or %q", OwnershipTrusted, OwnershipEnforced)
	}
	if cfg.CategoryMode != CategoryIgnore && cfg.CategoryMode != CategoryTags {
		fail("CATEGORY_MODE", "must be %q or %q", CategoryIgnore, CategoryTags)
	}
	if cfg.SeedCount < 0 {
		fail("SEED_COUNT", "must not be negative")
	}
	if cfg.SlotFlushInterval < 0 {
		fail("SLOT_FLUSH_INTERVAL", "must not be negative")
	}
	if cfg.RecipeCreateLimit < 0 {
		fail("RECIPE_CREATE_LIMIT", "must not be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
